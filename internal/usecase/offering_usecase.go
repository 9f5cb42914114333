package usecase

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var ErrSkillNotFound = errors.New("skill not found")

type OfferingItem struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	SkillID      uuid.UUID
	Title        string
	Description  string
	Mode         string
	Availability string
	Active       bool
	CreatedAt    time.Time

	SkillName    string
	CategoryName string
	OwnerName    string
}

type CreateOfferingInput struct {
	SkillID      uuid.UUID
	Title        string
	Description  string
	Mode         string
	Availability string
}

type UpdateOfferingInput struct {
	Title        string
	Description  string
	Mode         string
	Availability string
	Active       bool
}

// DeleteOfferingResult distinguishes a hard delete from the soft-delete
// taken when exchanges already reference the offering.
type DeleteOfferingResult struct {
	Deactivated bool
}

type OfferingUsecase interface {
	List(ctx context.Context, f repository.OfferingFilter) ([]OfferingItem, error)
	ListOwn(ctx context.Context, ownerID uuid.UUID) ([]OfferingItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (OfferingItem, error)
	Create(ctx context.Context, ownerID uuid.UUID, in CreateOfferingInput) (OfferingItem, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateOfferingInput) (OfferingItem, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (DeleteOfferingResult, error)
}

type Offering struct {
	offerings repository.OfferingRepository
	exchanges repository.ExchangeRepository
	skills    repository.SkillRepository
}

func NewOfferingUsecase(
	offerings repository.OfferingRepository,
	exchanges repository.ExchangeRepository,
	skills repository.SkillRepository,
) *Offering {
	return &Offering{offerings: offerings, exchanges: exchanges, skills: skills}
}

func (u *Offering) List(ctx context.Context, f repository.OfferingFilter) ([]OfferingItem, error) {
	items, err := u.offerings.ListActive(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return offeringItemsFromRepo(items), nil
}

func (u *Offering) ListOwn(ctx context.Context, ownerID uuid.UUID) ([]OfferingItem, error) {
	items, err := u.offerings.ListByOwner(ctx, ownerID, false, 0)
	if err != nil {
		return nil, ErrInternal
	}
	return offeringItemsFromRepo(items), nil
}

func (u *Offering) GetByID(ctx context.Context, id uuid.UUID) (OfferingItem, error) {
	if id == uuid.Nil {
		return OfferingItem{}, ErrInvalidInput
	}
	o, err := u.offerings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferingNotFound) {
			return OfferingItem{}, ErrOfferingNotFound
		}
		return OfferingItem{}, ErrInternal
	}
	return offeringItemFromRepo(o), nil
}

func (u *Offering) Create(ctx context.Context, ownerID uuid.UUID, in CreateOfferingInput) (OfferingItem, error) {
	if in.SkillID == uuid.Nil || in.Title == "" {
		return OfferingItem{}, ErrInvalidInput
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return OfferingItem{}, ErrInternal
	}
	if !exists {
		return OfferingItem{}, ErrSkillNotFound
	}

	created, err := u.offerings.Create(ctx, repository.Offering{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		SkillID:      in.SkillID,
		Title:        in.Title,
		Description:  in.Description,
		Mode:         in.Mode,
		Availability: in.Availability,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return OfferingItem{}, ErrSkillNotFound
		}
		return OfferingItem{}, ErrInternal
	}
	return offeringItemFromRepo(created), nil
}

func (u *Offering) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateOfferingInput) (OfferingItem, error) {
	if id == uuid.Nil || in.Title == "" {
		return OfferingItem{}, ErrInvalidInput
	}

	updated, err := u.offerings.Update(ctx, repository.Offering{
		ID:           id,
		OwnerID:      ownerID,
		Title:        in.Title,
		Description:  in.Description,
		Mode:         in.Mode,
		Availability: in.Availability,
		Active:       in.Active,
	})
	if err != nil {
		if errors.Is(err, repository.ErrOfferingNotFound) {
			return OfferingItem{}, ErrOfferingNotFound
		}
		return OfferingItem{}, ErrInternal
	}
	return offeringItemFromRepo(updated), nil
}

// Delete soft-deletes once any exchange references the offering, keeping
// the historical record those exchanges join against.
func (u *Offering) Delete(ctx context.Context, ownerID, id uuid.UUID) (DeleteOfferingResult, error) {
	if id == uuid.Nil {
		return DeleteOfferingResult{}, ErrInvalidInput
	}

	o, err := u.offerings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferingNotFound) {
			return DeleteOfferingResult{}, ErrOfferingNotFound
		}
		return DeleteOfferingResult{}, ErrInternal
	}
	if o.OwnerID != ownerID {
		return DeleteOfferingResult{}, ErrOfferingNotFound
	}

	referenced, err := u.exchanges.ExistsForOffering(ctx, id)
	if err != nil {
		return DeleteOfferingResult{}, ErrInternal
	}

	if referenced {
		if err := u.offerings.Deactivate(ctx, id); err != nil {
			return DeleteOfferingResult{}, ErrInternal
		}
		return DeleteOfferingResult{Deactivated: true}, nil
	}

	if err := u.offerings.Delete(ctx, id); err != nil {
		return DeleteOfferingResult{}, ErrInternal
	}
	return DeleteOfferingResult{}, nil
}

func offeringItemsFromRepo(items []repository.Offering) []OfferingItem {
	out := make([]OfferingItem, 0, len(items))
	for _, o := range items {
		out = append(out, offeringItemFromRepo(o))
	}
	return out
}

func offeringItemFromRepo(o repository.Offering) OfferingItem {
	return OfferingItem{
		ID:           o.ID,
		OwnerID:      o.OwnerID,
		SkillID:      o.SkillID,
		Title:        o.Title,
		Description:  o.Description,
		Mode:         o.Mode,
		Availability: o.Availability,
		Active:       o.Active,
		CreatedAt:    o.CreatedAt,
		SkillName:    o.SkillName,
		CategoryName: o.CategoryName,
		OwnerName:    o.OwnerName,
	}
}
