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

type OfferingHandler struct {
	uc usecase.OfferingUsecase
}

type createOfferingRequest struct {
	SkillID      uuid.UUID `json:"skill_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Mode         string    `json:"mode"`
	Availability string    `json:"availability"`
}

type updateOfferingRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Mode         string `json:"mode"`
	Availability string `json:"availability"`
	IsActive     bool   `json:"is_active"`
}

func NewOfferingHandler(uc usecase.OfferingUsecase) *OfferingHandler {
	return &OfferingHandler{uc: uc}
}

func (h *OfferingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/user", h.ListOwn)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *OfferingHandler) List(c fiber.Ctx) error {
	filter, err := offeringFilterFromQuery(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return mapOfferingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOfferingResponses(items))
}

func (h *OfferingHandler) ListOwn(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListOwn(c.Context(), userID)
	if err != nil {
		return mapOfferingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOfferingResponses(items))
}

func (h *OfferingHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return mapOfferingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOfferingResponse(item))
}

func (h *OfferingHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createOfferingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.Create(c.Context(), userID, usecase.CreateOfferingInput{
		SkillID:      req.SkillID,
		Title:        req.Title,
		Description:  req.Description,
		Mode:         req.Mode,
		Availability: req.Availability,
	})
	if err != nil {
		return mapOfferingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewOfferingResponse(item))
}

func (h *OfferingHandler) Update(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateOfferingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.Update(c.Context(), userID, id, usecase.UpdateOfferingInput{
		Title:        req.Title,
		Description:  req.Description,
		Mode:         req.Mode,
		Availability: req.Availability,
		Active:       req.IsActive,
	})
	if err != nil {
		return mapOfferingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOfferingResponse(item))
}

func (h *OfferingHandler) Delete(c fiber.Ctx) error {
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
		return mapOfferingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"offering_id": id,
		"deactivated": result.Deactivated,
	})
}

func offeringFilterFromQuery(c fiber.Ctx) (repository.OfferingFilter, error) {
	var f repository.OfferingFilter

	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return repository.OfferingFilter{}, err
		}
		f.CategoryID = id
	}
	if raw := c.Query("skill_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return repository.OfferingFilter{}, err
		}
		f.SkillID = id
	}
	f.Mode = c.Query("mode")

	return f, nil
}

func mapOfferingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrOfferingNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Offering not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
