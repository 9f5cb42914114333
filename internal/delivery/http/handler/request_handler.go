package handler

import (
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RequestHandler struct {
	uc       usecase.RequestUsecase
	matching usecase.MatchingUsecase
}

type createRequestRequest struct {
	SkillID            uuid.UUID `json:"skill_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Urgency            string    `json:"urgency"`
	PreferredTimeframe string    `json:"preferred_timeframe"`
}

type updateRequestRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Urgency            string `json:"urgency"`
	PreferredTimeframe string `json:"preferred_timeframe"`
	IsActive           bool   `json:"is_active"`
}

func NewRequestHandler(uc usecase.RequestUsecase, matching usecase.MatchingUsecase) *RequestHandler {
	return &RequestHandler{uc: uc, matching: matching}
}

func (h *RequestHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/user", h.ListOwn)
	r.Get("/:id", h.Get)
	r.Get("/:id/matches", h.Matches)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *RequestHandler) List(c fiber.Ctx) error {
	filter, err := requestFilterFromQuery(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return mapRequestUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRequestResponses(items))
}

func (h *RequestHandler) ListOwn(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListOwn(c.Context(), userID)
	if err != nil {
		return mapRequestUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRequestResponses(items))
}

// Get returns the request together with its matching offerings, so a
// browsing user sees candidate providers in one round trip.
func (h *RequestHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	req, matches, err := h.matching.GetRequestWithMatches(c.Context(), id)
	if err != nil {
		return mapRequestUsecaseError(err)
	}

	res := dto.RequestWithMatchesResponse{
		Request:           dto.NewRequestResponse(req),
		MatchingOfferings: dto.NewOfferingResponses(matches),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *RequestHandler) Matches(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	matches, err := h.matching.FindMatchingOfferings(c.Context(), id)
	if err != nil {
		return mapRequestUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOfferingResponses(matches))
}

func (h *RequestHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createRequestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.Create(c.Context(), userID, usecase.CreateRequestInput{
		SkillID:            req.SkillID,
		Title:              req.Title,
		Description:        req.Description,
		Urgency:            req.Urgency,
		PreferredTimeframe: req.PreferredTimeframe,
	})
	if err != nil {
		return mapRequestUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewRequestResponse(item))
}

func (h *RequestHandler) Update(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateRequestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.Update(c.Context(), userID, id, usecase.UpdateRequestInput{
		Title:              req.Title,
		Description:        req.Description,
		Urgency:            req.Urgency,
		PreferredTimeframe: req.PreferredTimeframe,
		Active:             req.IsActive,
	})
	if err != nil {
		return mapRequestUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRequestResponse(item))
}

func (h *RequestHandler) Delete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	result, err := h.uc.Delete(c.Context(), userID, id)
	if err != nil {
		return mapRequestUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"request_id":  id,
		"deactivated": result.Deactivated,
	})
}

func requestFilterFromQuery(c fiber.Ctx) (repository.RequestFilter, error) {
	var f repository.RequestFilter

	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return repository.RequestFilter{}, err
		}
		f.CategoryID = id
	}
	if raw := c.Query("skill_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return repository.RequestFilter{}, err
		}
		f.SkillID = id
	}
	f.Urgency = c.Query("urgency")

	return f, nil
}

func mapRequestUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrRequestNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Request not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidUrgency):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
