package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"skillswap/internal/domain/exchange"
	"skillswap/internal/notify"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrExchangeNotFound = errors.New("exchange not found")
	ErrOfferingNotFound = errors.New("offering not found")
	ErrRequestNotFound  = errors.New("request not found")

	ErrOwnOffering     = errors.New("providers cannot create exchanges with their own offerings")
	ErrRequestNotOwned = errors.New("you can only include your own requests in an exchange")

	ErrExchangeConflict   = errors.New("exchange status changed concurrently")
	ErrExchangeNotPending = errors.New("only pending exchanges can be deleted; consider canceling instead")
)

type CreateExchangeInput struct {
	OfferingID uuid.UUID
	RequestID  *uuid.UUID
}

// ExchangeItem is the joined exchange view handed back for display.
type ExchangeItem struct {
	ID          uuid.UUID
	ProviderID  uuid.UUID
	RequesterID uuid.UUID
	OfferingID  uuid.UUID
	RequestID   *uuid.UUID
	Status      exchange.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	OfferingTitle        string
	OfferingDescription  string
	OfferingMode         string
	OfferingAvailability string
	SkillName            string
	CategoryName         string
	ProviderName         string
	RequesterName        string

	RequestTitle       *string
	RequestDescription *string
	RequestUrgency     *string
	RequestTimeframe   *string
}

type ExchangeUsecase interface {
	Create(ctx context.Context, requesterID uuid.UUID, in CreateExchangeInput) (ExchangeItem, error)
	UpdateStatus(ctx context.Context, actorID, exchangeID uuid.UUID, target string) (ExchangeItem, error)
	Delete(ctx context.Context, actorID, exchangeID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]ExchangeItem, error)
	GetByID(ctx context.Context, userID, exchangeID uuid.UUID) (ExchangeItem, error)
}

type Exchange struct {
	exchanges repository.ExchangeRepository
	offerings repository.OfferingRepository
	requests  repository.RequestRepository
	notifier  notify.Notifier
	logger    *log.Logger
}

func NewExchangeUsecase(
	exchanges repository.ExchangeRepository,
	offerings repository.OfferingRepository,
	requests repository.RequestRepository,
	notifier notify.Notifier,
	logger *log.Logger,
) *Exchange {
	if logger == nil {
		logger = log.Default()
	}
	return &Exchange{
		exchanges: exchanges,
		offerings: offerings,
		requests:  requests,
		notifier:  notifier,
		logger:    logger,
	}
}

func (u *Exchange) Create(ctx context.Context, requesterID uuid.UUID, in CreateExchangeInput) (ExchangeItem, error) {
	if in.OfferingID == uuid.Nil || requesterID == uuid.Nil {
		return ExchangeItem{}, ErrInvalidInput
	}

	offering, err := u.offerings.FindByID(ctx, in.OfferingID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferingNotFound) {
			return ExchangeItem{}, ErrOfferingNotFound
		}
		return ExchangeItem{}, ErrInternal
	}

	if offering.OwnerID == requesterID {
		return ExchangeItem{}, ErrOwnOffering
	}

	if in.RequestID != nil {
		req, err := u.requests.FindByID(ctx, *in.RequestID)
		if err != nil {
			if errors.Is(err, repository.ErrRequestNotFound) {
				return ExchangeItem{}, ErrRequestNotFound
			}
			return ExchangeItem{}, ErrInternal
		}
		if req.OwnerID != requesterID {
			return ExchangeItem{}, ErrRequestNotOwned
		}
	}

	e := exchange.Exchange{
		ID:          uuid.New(),
		ProviderID:  offering.OwnerID,
		RequesterID: requesterID,
		OfferingID:  offering.ID,
		RequestID:   in.RequestID,
		Status:      exchange.StatusPending,
	}
	if err := u.exchanges.Insert(ctx, e); err != nil {
		return ExchangeItem{}, ErrInternal
	}

	detail, err := u.exchanges.FindDetailByID(ctx, e.ID)
	if err != nil {
		return ExchangeItem{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.Publish(ctx, exchangeEvent(notify.EventExchangeCreated, detail, requesterID))
	}

	return exchangeItemFromDetail(detail), nil
}

func (u *Exchange) UpdateStatus(ctx context.Context, actorID, exchangeID uuid.UUID, target string) (ExchangeItem, error) {
	targetStatus, err := exchange.ParseStatus(target)
	if err != nil {
		return ExchangeItem{}, err
	}

	detail, err := u.exchanges.FindDetailByID(ctx, exchangeID)
	if err != nil {
		if errors.Is(err, repository.ErrExchangeNotFound) {
			return ExchangeItem{}, ErrExchangeNotFound
		}
		return ExchangeItem{}, ErrInternal
	}

	// Non-participants get the same answer as a missing exchange.
	role, ok := detail.RoleOf(actorID)
	if !ok {
		return ExchangeItem{}, ErrExchangeNotFound
	}

	if err := exchange.Authorize(detail.Status, targetStatus, role); err != nil {
		return ExchangeItem{}, err
	}

	swapped, err := u.exchanges.CompareAndSetStatus(ctx, exchangeID, detail.Status, targetStatus)
	if err != nil {
		return ExchangeItem{}, ErrInternal
	}
	if !swapped {
		return ExchangeItem{}, ErrExchangeConflict
	}

	updated, err := u.exchanges.FindDetailByID(ctx, exchangeID)
	if err != nil {
		return ExchangeItem{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.Publish(ctx, exchangeEvent(eventTypeForStatus(targetStatus), updated, actorID))
	}

	return exchangeItemFromDetail(updated), nil
}

func (u *Exchange) Delete(ctx context.Context, actorID, exchangeID uuid.UUID) error {
	e, err := u.exchanges.FindByID(ctx, exchangeID)
	if err != nil {
		if errors.Is(err, repository.ErrExchangeNotFound) {
			return ErrExchangeNotFound
		}
		return ErrInternal
	}

	if _, ok := e.RoleOf(actorID); !ok {
		return ErrExchangeNotFound
	}

	if e.Status != exchange.StatusPending {
		return ErrExchangeNotPending
	}

	if err := u.exchanges.Delete(ctx, exchangeID); err != nil {
		if errors.Is(err, repository.ErrExchangeNotFound) {
			return ErrExchangeNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Exchange) ListForUser(ctx context.Context, userID uuid.UUID) ([]ExchangeItem, error) {
	details, err := u.exchanges.ListDetailsForUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]ExchangeItem, 0, len(details))
	for _, d := range details {
		out = append(out, exchangeItemFromDetail(d))
	}
	return out, nil
}

func (u *Exchange) GetByID(ctx context.Context, userID, exchangeID uuid.UUID) (ExchangeItem, error) {
	detail, err := u.exchanges.FindDetailByID(ctx, exchangeID)
	if err != nil {
		if errors.Is(err, repository.ErrExchangeNotFound) {
			return ExchangeItem{}, ErrExchangeNotFound
		}
		return ExchangeItem{}, ErrInternal
	}

	if _, ok := detail.RoleOf(userID); !ok {
		return ExchangeItem{}, ErrExchangeNotFound
	}

	return exchangeItemFromDetail(detail), nil
}

func eventTypeForStatus(s exchange.Status) notify.EventType {
	switch s {
	case exchange.StatusAccepted:
		return notify.EventExchangeAccepted
	case exchange.StatusCompleted:
		return notify.EventExchangeCompleted
	case exchange.StatusCanceled:
		return notify.EventExchangeCanceled
	default:
		return notify.EventExchangeCreated
	}
}

// exchangeEvent builds the post-commit event. For cancellations the
// counterpart is the participant who did not act.
func exchangeEvent(t notify.EventType, d repository.ExchangeDetail, actorID uuid.UUID) notify.ExchangeEvent {
	evt := notify.ExchangeEvent{
		Type:          t,
		ExchangeID:    d.ID,
		Status:        string(d.Status),
		ProviderID:    d.ProviderID,
		RequesterID:   d.RequesterID,
		ActorID:       actorID,
		OfferingTitle: d.OfferingTitle,
		SkillName:     d.SkillName,
		OccurredAt:    time.Now().UTC(),
	}

	if t == notify.EventExchangeCanceled {
		if actorID == d.ProviderID {
			evt.CounterpartName = d.RequesterName
			evt.CounterpartEmail = d.RequesterEmail
		} else {
			evt.CounterpartName = d.ProviderName
			evt.CounterpartEmail = d.ProviderEmail
		}
	}
	return evt
}

func exchangeItemFromDetail(d repository.ExchangeDetail) ExchangeItem {
	return ExchangeItem{
		ID:          d.ID,
		ProviderID:  d.ProviderID,
		RequesterID: d.RequesterID,
		OfferingID:  d.OfferingID,
		RequestID:   d.RequestID,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,

		OfferingTitle:        d.OfferingTitle,
		OfferingDescription:  d.OfferingDescription,
		OfferingMode:         d.OfferingMode,
		OfferingAvailability: d.OfferingAvailability,
		SkillName:            d.SkillName,
		CategoryName:         d.CategoryName,
		ProviderName:         d.ProviderName,
		RequesterName:        d.RequesterName,

		RequestTitle:       d.RequestTitle,
		RequestDescription: d.RequestDescription,
		RequestUrgency:     d.RequestUrgency,
		RequestTimeframe:   d.RequestTimeframe,
	}
}
