package dto

import (
	"time"

	"skillswap/internal/usecase"

	"github.com/google/uuid"
)

type RequestResponse struct {
	ID                 uuid.UUID `json:"id"`
	OwnerID            uuid.UUID `json:"user_id"`
	OwnerName          string    `json:"owner_name"`
	SkillID            uuid.UUID `json:"skill_id"`
	SkillName          string    `json:"skill_name"`
	CategoryName       string    `json:"category_name"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Urgency            string    `json:"urgency"`
	PreferredTimeframe string    `json:"preferred_timeframe"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
}

// RequestWithMatchesResponse pairs a request with the active offerings
// that teach the same skill.
type RequestWithMatchesResponse struct {
	Request           RequestResponse    `json:"request"`
	MatchingOfferings []OfferingResponse `json:"matching_offerings"`
}

func NewRequestResponse(it usecase.RequestItem) RequestResponse {
	return RequestResponse{
		ID:                 it.ID,
		OwnerID:            it.OwnerID,
		OwnerName:          it.OwnerName,
		SkillID:            it.SkillID,
		SkillName:          it.SkillName,
		CategoryName:       it.CategoryName,
		Title:              it.Title,
		Description:        it.Description,
		Urgency:            it.Urgency,
		PreferredTimeframe: it.PreferredTimeframe,
		IsActive:           it.Active,
		CreatedAt:          it.CreatedAt,
	}
}

func NewRequestResponses(items []usecase.RequestItem) []RequestResponse {
	out := make([]RequestResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewRequestResponse(it))
	}
	return out
}
