package usecase

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var ErrUserSkillExists = errors.New("user already has this skill")

const (
	catalogCacheKey = "skills:catalog"
	catalogCacheTTL = time.Hour
)

// CatalogCache is the best-effort cache port satisfied by the redis wrapper.
type CatalogCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type SkillItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// CategorySkills groups the catalog for display; the catalog is immutable
// lookup data, never decision logic.
type CategorySkills struct {
	Category string      `json:"category"`
	Skills   []SkillItem `json:"skills"`
}

type UserSkillItem struct {
	ID               uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	CategoryName     string
	ProficiencyLevel int
	Notes            string
}

type AddUserSkillInput struct {
	SkillID          uuid.UUID
	ProficiencyLevel int
	Notes            string
}

type SkillUsecase interface {
	ListCatalog(ctx context.Context) ([]CategorySkills, error)
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error)
	AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (UserSkillItem, error)
	RemoveUserSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

type Skill struct {
	repo  repository.SkillRepository
	cache CatalogCache
}

func NewSkillUsecase(repo repository.SkillRepository, cache CatalogCache) *Skill {
	return &Skill{repo: repo, cache: cache}
}

func (u *Skill) ListCatalog(ctx context.Context) ([]CategorySkills, error) {
	if u.cache != nil {
		var cached []CategorySkills
		if hit, _ := u.cache.GetJSON(ctx, catalogCacheKey, &cached); hit {
			return cached, nil
		}
	}

	skills, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	grouped := groupByCategory(skills)

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, catalogCacheKey, grouped, catalogCacheTTL)
	}
	return grouped, nil
}

func (u *Skill) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error) {
	items, err := u.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]UserSkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, UserSkillItem{
			ID:               it.ID,
			SkillID:          it.SkillID,
			SkillName:        it.SkillName,
			CategoryName:     it.CategoryName,
			ProficiencyLevel: it.ProficiencyLevel,
			Notes:            it.Notes,
		})
	}
	return out, nil
}

func (u *Skill) AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (UserSkillItem, error) {
	if in.SkillID == uuid.Nil {
		return UserSkillItem{}, ErrInvalidInput
	}

	exists, err := u.repo.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return UserSkillItem{}, ErrInternal
	}
	if !exists {
		return UserSkillItem{}, ErrSkillNotFound
	}

	has, err := u.repo.HasUserSkill(ctx, userID, in.SkillID)
	if err != nil {
		return UserSkillItem{}, ErrInternal
	}
	if has {
		return UserSkillItem{}, ErrUserSkillExists
	}

	created, err := u.repo.AddToUser(ctx, repository.UserSkill{
		ID:               uuid.New(),
		UserID:           userID,
		SkillID:          in.SkillID,
		ProficiencyLevel: in.ProficiencyLevel,
		Notes:            in.Notes,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return UserSkillItem{}, ErrUserSkillExists
		}
		if isForeignKeyViolation(err) {
			return UserSkillItem{}, ErrSkillNotFound
		}
		return UserSkillItem{}, ErrInternal
	}

	return UserSkillItem{
		ID:               created.ID,
		SkillID:          created.SkillID,
		SkillName:        created.SkillName,
		CategoryName:     created.CategoryName,
		ProficiencyLevel: created.ProficiencyLevel,
		Notes:            created.Notes,
	}, nil
}

func (u *Skill) RemoveUserSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if skillID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.RemoveFromUser(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	return nil
}

func groupByCategory(skills []repository.Skill) []CategorySkills {
	out := make([]CategorySkills, 0)
	idx := make(map[string]int)
	for _, s := range skills {
		i, ok := idx[s.CategoryName]
		if !ok {
			i = len(out)
			idx[s.CategoryName] = i
			out = append(out, CategorySkills{Category: s.CategoryName, Skills: make([]SkillItem, 0, 4)})
		}
		out[i].Skills = append(out[i].Skills, SkillItem{ID: s.ID, Name: s.Name, Description: s.Description})
	}
	return out
}
