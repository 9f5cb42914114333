package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	entries map[string][]byte
	hits    int
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, out)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func TestSkillListCatalog_GroupsByCategory(t *testing.T) {
	progID := uuid.New()
	musicID := uuid.New()
	repo := newFakeSkillRepo(
		repository.Skill{ID: progID, Name: "Go", CategoryName: "Programming"},
		repository.Skill{ID: musicID, Name: "Guitar", CategoryName: "Music"},
		repository.Skill{ID: uuid.New(), Name: "Python", CategoryName: "Programming"},
	)

	uc := NewSkillUsecase(repo, nil)

	catalog, err := uc.ListCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 2)

	byCategory := make(map[string]int)
	for _, group := range catalog {
		byCategory[group.Category] = len(group.Skills)
	}
	assert.Equal(t, 2, byCategory["Programming"])
	assert.Equal(t, 1, byCategory["Music"])
}

func TestSkillListCatalog_CacheRoundTrip(t *testing.T) {
	cache := newMemoryCache()
	repo := newFakeSkillRepo(repository.Skill{ID: uuid.New(), Name: "Go", CategoryName: "Programming"})
	uc := NewSkillUsecase(repo, cache)

	first, err := uc.ListCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := uc.ListCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first, second)
}

func TestSkillAddUserSkill(t *testing.T) {
	skillID := uuid.New()
	userID := uuid.New()
	repo := newFakeSkillRepo(repository.Skill{ID: skillID, Name: "Go", CategoryName: "Programming"})
	uc := NewSkillUsecase(repo, nil)

	item, err := uc.AddUserSkill(context.Background(), userID, AddUserSkillInput{
		SkillID:          skillID,
		ProficiencyLevel: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Go", item.SkillName)
	assert.Equal(t, 3, item.ProficiencyLevel)
}

func TestSkillAddUserSkill_Duplicate(t *testing.T) {
	skillID := uuid.New()
	userID := uuid.New()
	repo := newFakeSkillRepo(repository.Skill{ID: skillID, Name: "Go", CategoryName: "Programming"})
	uc := NewSkillUsecase(repo, nil)

	_, err := uc.AddUserSkill(context.Background(), userID, AddUserSkillInput{SkillID: skillID})
	require.NoError(t, err)

	_, err = uc.AddUserSkill(context.Background(), userID, AddUserSkillInput{SkillID: skillID})
	assert.ErrorIs(t, err, ErrUserSkillExists)
}

func TestSkillAddUserSkill_UnknownSkill(t *testing.T) {
	uc := NewSkillUsecase(newFakeSkillRepo(), nil)

	_, err := uc.AddUserSkill(context.Background(), uuid.New(), AddUserSkillInput{SkillID: uuid.New()})

	assert.ErrorIs(t, err, ErrSkillNotFound)
}

func TestSkillRemoveUserSkill(t *testing.T) {
	skillID := uuid.New()
	userID := uuid.New()
	repo := newFakeSkillRepo(repository.Skill{ID: skillID, Name: "Go", CategoryName: "Programming"})
	uc := NewSkillUsecase(repo, nil)

	_, err := uc.AddUserSkill(context.Background(), userID, AddUserSkillInput{SkillID: skillID})
	require.NoError(t, err)

	require.NoError(t, uc.RemoveUserSkill(context.Background(), userID, skillID))

	err = uc.RemoveUserSkill(context.Background(), userID, skillID)
	assert.ErrorIs(t, err, ErrSkillNotFound)
}
