package dto

import (
	"time"

	"skillswap/internal/usecase"

	"github.com/google/uuid"
)

type OfferingResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"user_id"`
	OwnerName    string    `json:"owner_name"`
	SkillID      uuid.UUID `json:"skill_id"`
	SkillName    string    `json:"skill_name"`
	CategoryName string    `json:"category_name"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Mode         string    `json:"mode"`
	Availability string    `json:"availability"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewOfferingResponse(it usecase.OfferingItem) OfferingResponse {
	return OfferingResponse{
		ID:           it.ID,
		OwnerID:      it.OwnerID,
		OwnerName:    it.OwnerName,
		SkillID:      it.SkillID,
		SkillName:    it.SkillName,
		CategoryName: it.CategoryName,
		Title:        it.Title,
		Description:  it.Description,
		Mode:         it.Mode,
		Availability: it.Availability,
		IsActive:     it.Active,
		CreatedAt:    it.CreatedAt,
	}
}

func NewOfferingResponses(items []usecase.OfferingItem) []OfferingResponse {
	out := make([]OfferingResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewOfferingResponse(it))
	}
	return out
}
