package dto

import (
	"time"

	"skillswap/internal/usecase"

	"github.com/google/uuid"
)

type ExchangeResponse struct {
	ID            uuid.UUID `json:"id"`
	Status        string    `json:"status"`
	ProviderID    uuid.UUID `json:"provider_id"`
	ProviderName  string    `json:"provider_name"`
	RequesterID   uuid.UUID `json:"requester_id"`
	RequesterName string    `json:"requester_name"`

	OfferingID           uuid.UUID `json:"offering_id"`
	OfferingTitle        string    `json:"offering_title"`
	OfferingDescription  string    `json:"offering_description"`
	OfferingMode         string    `json:"offering_mode"`
	OfferingAvailability string    `json:"offering_availability"`
	SkillName            string    `json:"skill_name"`
	CategoryName         string    `json:"category_name"`

	RequestID          *uuid.UUID `json:"request_id,omitempty"`
	RequestTitle       *string    `json:"request_title,omitempty"`
	RequestDescription *string    `json:"request_description,omitempty"`
	RequestUrgency     *string    `json:"request_urgency,omitempty"`
	RequestTimeframe   *string    `json:"request_timeframe,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewExchangeResponse(it usecase.ExchangeItem) ExchangeResponse {
	return ExchangeResponse{
		ID:                   it.ID,
		Status:               string(it.Status),
		ProviderID:           it.ProviderID,
		ProviderName:         it.ProviderName,
		RequesterID:          it.RequesterID,
		RequesterName:        it.RequesterName,
		OfferingID:           it.OfferingID,
		OfferingTitle:        it.OfferingTitle,
		OfferingDescription:  it.OfferingDescription,
		OfferingMode:         it.OfferingMode,
		OfferingAvailability: it.OfferingAvailability,
		SkillName:            it.SkillName,
		CategoryName:         it.CategoryName,
		RequestID:            it.RequestID,
		RequestTitle:         it.RequestTitle,
		RequestDescription:   it.RequestDescription,
		RequestUrgency:       it.RequestUrgency,
		RequestTimeframe:     it.RequestTimeframe,
		CreatedAt:            it.CreatedAt,
		UpdatedAt:            it.UpdatedAt,
	}
}

func NewExchangeResponses(items []usecase.ExchangeItem) []ExchangeResponse {
	out := make([]ExchangeResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewExchangeResponse(it))
	}
	return out
}
