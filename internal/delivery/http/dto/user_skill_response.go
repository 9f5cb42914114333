package dto

import (
	"skillswap/internal/usecase"

	"github.com/google/uuid"
)

type UserSkillResponse struct {
	ID               uuid.UUID `json:"id"`
	SkillID          uuid.UUID `json:"skill_id"`
	SkillName        string    `json:"skill_name"`
	CategoryName     string    `json:"category_name"`
	ProficiencyLevel int       `json:"proficiency_level"`
	Notes            string    `json:"notes"`
}

func NewUserSkillResponse(it usecase.UserSkillItem) UserSkillResponse {
	return UserSkillResponse{
		ID:               it.ID,
		SkillID:          it.SkillID,
		SkillName:        it.SkillName,
		CategoryName:     it.CategoryName,
		ProficiencyLevel: it.ProficiencyLevel,
		Notes:            it.Notes,
	}
}

func NewUserSkillResponses(items []usecase.UserSkillItem) []UserSkillResponse {
	out := make([]UserSkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewUserSkillResponse(it))
	}
	return out
}
