package dto

import (
	"skillswap/internal/usecase"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Bio      string    `json:"bio"`
	Campus   string    `json:"campus"`
}

type DashboardCountsResponse struct {
	ActiveOfferings   int `json:"active_offerings"`
	ActiveRequests    int `json:"active_requests"`
	PendingExchanges  int `json:"pending_exchanges"`
	AcceptedExchanges int `json:"accepted_exchanges"`
}

type DashboardResponse struct {
	Profile         ProfileResponse         `json:"profile"`
	RecentOfferings []OfferingResponse      `json:"recent_offerings"`
	RecentRequests  []RequestResponse       `json:"recent_requests"`
	RecentExchanges []ExchangeResponse      `json:"recent_exchanges"`
	Skills          []UserSkillResponse     `json:"skills"`
	Counts          DashboardCountsResponse `json:"counts"`
}

func NewDashboardResponse(d usecase.Dashboard) DashboardResponse {
	return DashboardResponse{
		Profile: ProfileResponse{
			UserID:   d.Profile.UserID,
			FullName: d.Profile.FullName,
			Email:    d.Profile.Email,
			Bio:      d.Profile.Bio,
			Campus:   d.Profile.Campus,
		},
		RecentOfferings: NewOfferingResponses(d.RecentOfferings),
		RecentRequests:  NewRequestResponses(d.RecentRequests),
		RecentExchanges: NewExchangeResponses(d.RecentExchanges),
		Skills:          NewUserSkillResponses(d.Skills),
		Counts: DashboardCountsResponse{
			ActiveOfferings:   d.Counts.ActiveOfferings,
			ActiveRequests:    d.Counts.ActiveRequests,
			PendingExchanges:  d.Counts.PendingExchanges,
			AcceptedExchanges: d.Counts.AcceptedExchanges,
		},
	}
}
