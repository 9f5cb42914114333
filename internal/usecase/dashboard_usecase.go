package usecase

import (
	"context"
	"errors"

	"skillswap/internal/domain/exchange"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("user profile not found")

const (
	dashboardAdLimit       = 5
	dashboardExchangeLimit = 10
)

type ProfileItem struct {
	UserID   uuid.UUID
	FullName string
	Email    string
	Bio      string
	Campus   string
}

type DashboardCounts struct {
	ActiveOfferings   int
	ActiveRequests    int
	PendingExchanges  int
	AcceptedExchanges int
}

type Dashboard struct {
	Profile         ProfileItem
	RecentOfferings []OfferingItem
	RecentRequests  []RequestItem
	RecentExchanges []ExchangeItem
	Skills          []UserSkillItem
	Counts          DashboardCounts
}

type DashboardUsecase interface {
	GetForUser(ctx context.Context, userID uuid.UUID) (Dashboard, error)
}

type DashboardService struct {
	profiles  repository.ProfileRepository
	offerings repository.OfferingRepository
	requests  repository.RequestRepository
	exchanges repository.ExchangeRepository
	skills    repository.SkillRepository
}

func NewDashboardUsecase(
	profiles repository.ProfileRepository,
	offerings repository.OfferingRepository,
	requests repository.RequestRepository,
	exchanges repository.ExchangeRepository,
	skills repository.SkillRepository,
) *DashboardService {
	return &DashboardService{
		profiles:  profiles,
		offerings: offerings,
		requests:  requests,
		exchanges: exchanges,
		skills:    skills,
	}
}

func (u *DashboardService) GetForUser(ctx context.Context, userID uuid.UUID) (Dashboard, error) {
	profile, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return Dashboard{}, ErrProfileNotFound
		}
		return Dashboard{}, ErrInternal
	}

	offerings, err := u.offerings.ListByOwner(ctx, userID, true, dashboardAdLimit)
	if err != nil {
		return Dashboard{}, ErrInternal
	}

	requests, err := u.requests.ListByOwner(ctx, userID, true, dashboardAdLimit)
	if err != nil {
		return Dashboard{}, ErrInternal
	}

	exchangeDetails, err := u.exchanges.ListRecentForUser(ctx, userID, dashboardExchangeLimit)
	if err != nil {
		return Dashboard{}, ErrInternal
	}
	recentExchanges := make([]ExchangeItem, 0, len(exchangeDetails))
	for _, d := range exchangeDetails {
		recentExchanges = append(recentExchanges, exchangeItemFromDetail(d))
	}

	userSkills, err := u.skills.ListForUser(ctx, userID)
	if err != nil {
		return Dashboard{}, ErrInternal
	}
	skills := make([]UserSkillItem, 0, len(userSkills))
	for _, it := range userSkills {
		skills = append(skills, UserSkillItem{
			ID:               it.ID,
			SkillID:          it.SkillID,
			SkillName:        it.SkillName,
			CategoryName:     it.CategoryName,
			ProficiencyLevel: it.ProficiencyLevel,
			Notes:            it.Notes,
		})
	}

	counts, err := u.counts(ctx, userID)
	if err != nil {
		return Dashboard{}, ErrInternal
	}

	return Dashboard{
		Profile: ProfileItem{
			UserID:   profile.UserID,
			FullName: profile.FullName,
			Email:    profile.Email,
			Bio:      profile.Bio,
			Campus:   profile.Campus,
		},
		RecentOfferings: offeringItemsFromRepo(offerings),
		RecentRequests:  requestItemsFromRepo(requests),
		RecentExchanges: recentExchanges,
		Skills:          skills,
		Counts:          counts,
	}, nil
}

func (u *DashboardService) counts(ctx context.Context, userID uuid.UUID) (DashboardCounts, error) {
	activeOfferings, err := u.offerings.CountActiveByOwner(ctx, userID)
	if err != nil {
		return DashboardCounts{}, err
	}
	activeRequests, err := u.requests.CountActiveByOwner(ctx, userID)
	if err != nil {
		return DashboardCounts{}, err
	}
	pending, err := u.exchanges.CountForUserByStatus(ctx, userID, exchange.StatusPending)
	if err != nil {
		return DashboardCounts{}, err
	}
	accepted, err := u.exchanges.CountForUserByStatus(ctx, userID, exchange.StatusAccepted)
	if err != nil {
		return DashboardCounts{}, err
	}
	return DashboardCounts{
		ActiveOfferings:   activeOfferings,
		ActiveRequests:    activeRequests,
		PendingExchanges:  pending,
		AcceptedExchanges: accepted,
	}, nil
}
