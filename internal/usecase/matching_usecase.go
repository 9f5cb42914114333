package usecase

import (
	"context"
	"errors"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

// MatchingUsecase links a request to candidate offerings by skill identity.
type MatchingUsecase interface {
	FindMatchingOfferings(ctx context.Context, requestID uuid.UUID) ([]OfferingItem, error)
	GetRequestWithMatches(ctx context.Context, requestID uuid.UUID) (RequestItem, []OfferingItem, error)
}

type Matching struct {
	requests  repository.RequestRepository
	offerings repository.OfferingRepository
}

func NewMatchingUsecase(requests repository.RequestRepository, offerings repository.OfferingRepository) *Matching {
	return &Matching{requests: requests, offerings: offerings}
}

// FindMatchingOfferings returns active offerings sharing the request's
// skill, newest first, never including the requester's own. An empty slice
// is a valid outcome, not an error.
func (u *Matching) FindMatchingOfferings(ctx context.Context, requestID uuid.UUID) ([]OfferingItem, error) {
	if requestID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	req, err := u.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, ErrInternal
	}

	matches, err := u.offerings.FindMatches(ctx, req.SkillID, req.OwnerID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]OfferingItem, 0, len(matches))
	for _, o := range matches {
		out = append(out, offeringItemFromRepo(o))
	}
	return out, nil
}

func (u *Matching) GetRequestWithMatches(ctx context.Context, requestID uuid.UUID) (RequestItem, []OfferingItem, error) {
	if requestID == uuid.Nil {
		return RequestItem{}, nil, ErrInvalidInput
	}

	req, err := u.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return RequestItem{}, nil, ErrRequestNotFound
		}
		return RequestItem{}, nil, ErrInternal
	}

	matches, err := u.offerings.FindMatches(ctx, req.SkillID, req.OwnerID)
	if err != nil {
		return RequestItem{}, nil, ErrInternal
	}

	out := make([]OfferingItem, 0, len(matches))
	for _, o := range matches {
		out = append(out, offeringItemFromRepo(o))
	}
	return requestItemFromRepo(req), out, nil
}
