package usecase

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidUrgency = errors.New("urgency must be high, medium or low")

type RequestItem struct {
	ID                 uuid.UUID
	OwnerID            uuid.UUID
	SkillID            uuid.UUID
	Title              string
	Description        string
	Urgency            string
	PreferredTimeframe string
	Active             bool
	CreatedAt          time.Time

	SkillName    string
	CategoryName string
	OwnerName    string
}

type CreateRequestInput struct {
	SkillID            uuid.UUID
	Title              string
	Description        string
	Urgency            string
	PreferredTimeframe string
}

type UpdateRequestInput struct {
	Title              string
	Description        string
	Urgency            string
	PreferredTimeframe string
	Active             bool
}

type DeleteRequestResult struct {
	Deactivated bool
}

type RequestUsecase interface {
	List(ctx context.Context, f repository.RequestFilter) ([]RequestItem, error)
	ListOwn(ctx context.Context, ownerID uuid.UUID) ([]RequestItem, error)
	Create(ctx context.Context, ownerID uuid.UUID, in CreateRequestInput) (RequestItem, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateRequestInput) (RequestItem, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (DeleteRequestResult, error)
}

type Request struct {
	requests  repository.RequestRepository
	exchanges repository.ExchangeRepository
	skills    repository.SkillRepository
}

func NewRequestUsecase(
	requests repository.RequestRepository,
	exchanges repository.ExchangeRepository,
	skills repository.SkillRepository,
) *Request {
	return &Request{requests: requests, exchanges: exchanges, skills: skills}
}

func (u *Request) List(ctx context.Context, f repository.RequestFilter) ([]RequestItem, error) {
	items, err := u.requests.ListActive(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return requestItemsFromRepo(items), nil
}

func (u *Request) ListOwn(ctx context.Context, ownerID uuid.UUID) ([]RequestItem, error) {
	items, err := u.requests.ListByOwner(ctx, ownerID, false, 0)
	if err != nil {
		return nil, ErrInternal
	}
	return requestItemsFromRepo(items), nil
}

func (u *Request) Create(ctx context.Context, ownerID uuid.UUID, in CreateRequestInput) (RequestItem, error) {
	if in.SkillID == uuid.Nil || in.Title == "" {
		return RequestItem{}, ErrInvalidInput
	}
	if !isValidUrgency(in.Urgency) {
		return RequestItem{}, ErrInvalidUrgency
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return RequestItem{}, ErrInternal
	}
	if !exists {
		return RequestItem{}, ErrSkillNotFound
	}

	created, err := u.requests.Create(ctx, repository.Request{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		SkillID:            in.SkillID,
		Title:              in.Title,
		Description:        in.Description,
		Urgency:            in.Urgency,
		PreferredTimeframe: in.PreferredTimeframe,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return RequestItem{}, ErrSkillNotFound
		}
		return RequestItem{}, ErrInternal
	}
	return requestItemFromRepo(created), nil
}

func (u *Request) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateRequestInput) (RequestItem, error) {
	if id == uuid.Nil || in.Title == "" {
		return RequestItem{}, ErrInvalidInput
	}
	if !isValidUrgency(in.Urgency) {
		return RequestItem{}, ErrInvalidUrgency
	}

	updated, err := u.requests.Update(ctx, repository.Request{
		ID:                 id,
		OwnerID:            ownerID,
		Title:              in.Title,
		Description:        in.Description,
		Urgency:            in.Urgency,
		PreferredTimeframe: in.PreferredTimeframe,
		Active:             in.Active,
	})
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return RequestItem{}, ErrRequestNotFound
		}
		return RequestItem{}, ErrInternal
	}
	return requestItemFromRepo(updated), nil
}

func (u *Request) Delete(ctx context.Context, ownerID, id uuid.UUID) (DeleteRequestResult, error) {
	if id == uuid.Nil {
		return DeleteRequestResult{}, ErrInvalidInput
	}

	req, err := u.requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return DeleteRequestResult{}, ErrRequestNotFound
		}
		return DeleteRequestResult{}, ErrInternal
	}
	if req.OwnerID != ownerID {
		return DeleteRequestResult{}, ErrRequestNotFound
	}

	referenced, err := u.exchanges.ExistsForRequest(ctx, id)
	if err != nil {
		return DeleteRequestResult{}, ErrInternal
	}

	if referenced {
		if err := u.requests.Deactivate(ctx, id); err != nil {
			return DeleteRequestResult{}, ErrInternal
		}
		return DeleteRequestResult{Deactivated: true}, nil
	}

	if err := u.requests.Delete(ctx, id); err != nil {
		return DeleteRequestResult{}, ErrInternal
	}
	return DeleteRequestResult{}, nil
}

func isValidUrgency(u string) bool {
	switch u {
	case "high", "medium", "low":
		return true
	default:
		return false
	}
}

func requestItemsFromRepo(items []repository.Request) []RequestItem {
	out := make([]RequestItem, 0, len(items))
	for _, r := range items {
		out = append(out, requestItemFromRepo(r))
	}
	return out
}

func requestItemFromRepo(r repository.Request) RequestItem {
	return RequestItem{
		ID:                 r.ID,
		OwnerID:            r.OwnerID,
		SkillID:            r.SkillID,
		Title:              r.Title,
		Description:        r.Description,
		Urgency:            r.Urgency,
		PreferredTimeframe: r.PreferredTimeframe,
		Active:             r.Active,
		CreatedAt:          r.CreatedAt,
		SkillName:          r.SkillName,
		CategoryName:       r.CategoryName,
		OwnerName:          r.OwnerName,
	}
}
