package usecase

import (
	"context"
	"sort"
	"time"

	"skillswap/internal/domain/exchange"
	"skillswap/internal/notify"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type fakeExchangeRepo struct {
	exchanges   map[uuid.UUID]*repository.ExchangeDetail
	casConflict bool
	deleted     []uuid.UUID

	offeringRefs map[uuid.UUID]bool
	requestRefs  map[uuid.UUID]bool
}

func newFakeExchangeRepo() *fakeExchangeRepo {
	return &fakeExchangeRepo{
		exchanges:    make(map[uuid.UUID]*repository.ExchangeDetail),
		offeringRefs: make(map[uuid.UUID]bool),
		requestRefs:  make(map[uuid.UUID]bool),
	}
}

func (f *fakeExchangeRepo) Insert(_ context.Context, e exchange.Exchange) error {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	f.exchanges[e.ID] = &repository.ExchangeDetail{
		Exchange:       e,
		OfferingTitle:  "Intro to Go",
		SkillName:      "Go",
		CategoryName:   "Programming",
		ProviderName:   "Pat Provider",
		ProviderEmail:  "pat@campus.edu",
		RequesterName:  "Riley Requester",
		RequesterEmail: "riley@campus.edu",
	}
	return nil
}

func (f *fakeExchangeRepo) FindByID(_ context.Context, id uuid.UUID) (exchange.Exchange, error) {
	d, ok := f.exchanges[id]
	if !ok {
		return exchange.Exchange{}, repository.ErrExchangeNotFound
	}
	return d.Exchange, nil
}

func (f *fakeExchangeRepo) FindDetailByID(_ context.Context, id uuid.UUID) (repository.ExchangeDetail, error) {
	d, ok := f.exchanges[id]
	if !ok {
		return repository.ExchangeDetail{}, repository.ErrExchangeNotFound
	}
	return *d, nil
}

func (f *fakeExchangeRepo) ListDetailsForUser(_ context.Context, userID uuid.UUID) ([]repository.ExchangeDetail, error) {
	out := make([]repository.ExchangeDetail, 0)
	for _, d := range f.exchanges {
		if d.ProviderID == userID || d.RequesterID == userID {
			out = append(out, *d)
		}
	}
	// Same ordering the SQL listing applies: status rank, then most
	// recently updated first.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Status.Rank() != out[j].Status.Rank() {
			return out[i].Status.Rank() < out[j].Status.Rank()
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (f *fakeExchangeRepo) ListRecentForUser(ctx context.Context, userID uuid.UUID, _ int) ([]repository.ExchangeDetail, error) {
	return f.ListDetailsForUser(ctx, userID)
}

func (f *fakeExchangeRepo) CompareAndSetStatus(_ context.Context, id uuid.UUID, expected, next exchange.Status) (bool, error) {
	if f.casConflict {
		return false, nil
	}
	d, ok := f.exchanges[id]
	if !ok || d.Status != expected {
		return false, nil
	}
	d.Status = next
	d.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (f *fakeExchangeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.exchanges[id]; !ok {
		return repository.ErrExchangeNotFound
	}
	delete(f.exchanges, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeExchangeRepo) ExistsForOffering(_ context.Context, offeringID uuid.UUID) (bool, error) {
	return f.offeringRefs[offeringID], nil
}

func (f *fakeExchangeRepo) ExistsForRequest(_ context.Context, requestID uuid.UUID) (bool, error) {
	return f.requestRefs[requestID], nil
}

func (f *fakeExchangeRepo) CountForUserByStatus(_ context.Context, userID uuid.UUID, status exchange.Status) (int, error) {
	n := 0
	for _, d := range f.exchanges {
		if (d.ProviderID == userID || d.RequesterID == userID) && d.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeOfferingRepo struct {
	offerings map[uuid.UUID]repository.Offering
}

func newFakeOfferingRepo(items ...repository.Offering) *fakeOfferingRepo {
	f := &fakeOfferingRepo{offerings: make(map[uuid.UUID]repository.Offering)}
	for _, o := range items {
		f.offerings[o.ID] = o
	}
	return f
}

func (f *fakeOfferingRepo) ListActive(_ context.Context, _ repository.OfferingFilter) ([]repository.Offering, error) {
	out := make([]repository.Offering, 0)
	for _, o := range f.offerings {
		if o.Active {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOfferingRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, activeOnly bool, _ int) ([]repository.Offering, error) {
	out := make([]repository.Offering, 0)
	for _, o := range f.offerings {
		if o.OwnerID != ownerID {
			continue
		}
		if activeOnly && !o.Active {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOfferingRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Offering, error) {
	o, ok := f.offerings[id]
	if !ok {
		return repository.Offering{}, repository.ErrOfferingNotFound
	}
	return o, nil
}

func (f *fakeOfferingRepo) FindMatches(_ context.Context, skillID uuid.UUID, excludeOwner uuid.UUID) ([]repository.Offering, error) {
	out := make([]repository.Offering, 0)
	for _, o := range f.offerings {
		if o.Active && o.SkillID == skillID && o.OwnerID != excludeOwner {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOfferingRepo) Create(_ context.Context, o repository.Offering) (repository.Offering, error) {
	o.Active = true
	o.CreatedAt = time.Now().UTC()
	f.offerings[o.ID] = o
	return o, nil
}

func (f *fakeOfferingRepo) Update(_ context.Context, o repository.Offering) (repository.Offering, error) {
	existing, ok := f.offerings[o.ID]
	if !ok || existing.OwnerID != o.OwnerID {
		return repository.Offering{}, repository.ErrOfferingNotFound
	}
	existing.Title = o.Title
	existing.Description = o.Description
	existing.Mode = o.Mode
	existing.Availability = o.Availability
	existing.Active = o.Active
	f.offerings[o.ID] = existing
	return existing, nil
}

func (f *fakeOfferingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.offerings[id]; !ok {
		return repository.ErrOfferingNotFound
	}
	delete(f.offerings, id)
	return nil
}

func (f *fakeOfferingRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	o, ok := f.offerings[id]
	if !ok {
		return repository.ErrOfferingNotFound
	}
	o.Active = false
	f.offerings[id] = o
	return nil
}

func (f *fakeOfferingRepo) CountActiveByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	n := 0
	for _, o := range f.offerings {
		if o.OwnerID == ownerID && o.Active {
			n++
		}
	}
	return n, nil
}

type fakeRequestRepo struct {
	requests map[uuid.UUID]repository.Request
}

func newFakeRequestRepo(items ...repository.Request) *fakeRequestRepo {
	f := &fakeRequestRepo{requests: make(map[uuid.UUID]repository.Request)}
	for _, r := range items {
		f.requests[r.ID] = r
	}
	return f
}

func (f *fakeRequestRepo) ListActive(_ context.Context, _ repository.RequestFilter) ([]repository.Request, error) {
	out := make([]repository.Request, 0)
	for _, r := range f.requests {
		if r.Active {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, activeOnly bool, _ int) ([]repository.Request, error) {
	out := make([]repository.Request, 0)
	for _, r := range f.requests {
		if r.OwnerID != ownerID {
			continue
		}
		if activeOnly && !r.Active {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return repository.Request{}, repository.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) Create(_ context.Context, r repository.Request) (repository.Request, error) {
	r.Active = true
	r.CreatedAt = time.Now().UTC()
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeRequestRepo) Update(_ context.Context, r repository.Request) (repository.Request, error) {
	existing, ok := f.requests[r.ID]
	if !ok || existing.OwnerID != r.OwnerID {
		return repository.Request{}, repository.ErrRequestNotFound
	}
	existing.Title = r.Title
	existing.Description = r.Description
	existing.Urgency = r.Urgency
	existing.PreferredTimeframe = r.PreferredTimeframe
	existing.Active = r.Active
	f.requests[r.ID] = existing
	return existing, nil
}

func (f *fakeRequestRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.requests[id]; !ok {
		return repository.ErrRequestNotFound
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeRequestRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	r, ok := f.requests[id]
	if !ok {
		return repository.ErrRequestNotFound
	}
	r.Active = false
	f.requests[id] = r
	return nil
}

func (f *fakeRequestRepo) CountActiveByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	n := 0
	for _, r := range f.requests {
		if r.OwnerID == ownerID && r.Active {
			n++
		}
	}
	return n, nil
}

type fakeSkillRepo struct {
	skills     map[uuid.UUID]repository.Skill
	userSkills map[uuid.UUID]map[uuid.UUID]repository.UserSkill
}

func newFakeSkillRepo(skills ...repository.Skill) *fakeSkillRepo {
	f := &fakeSkillRepo{
		skills:     make(map[uuid.UUID]repository.Skill),
		userSkills: make(map[uuid.UUID]map[uuid.UUID]repository.UserSkill),
	}
	for _, s := range skills {
		f.skills[s.ID] = s
	}
	return f
}

func (f *fakeSkillRepo) ListAll(_ context.Context) ([]repository.Skill, error) {
	out := make([]repository.Skill, 0, len(f.skills))
	for _, s := range f.skills {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSkillRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.skills[id]
	return ok, nil
}

func (f *fakeSkillRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]repository.UserSkill, error) {
	out := make([]repository.UserSkill, 0)
	for _, us := range f.userSkills[userID] {
		out = append(out, us)
	}
	return out, nil
}

func (f *fakeSkillRepo) HasUserSkill(_ context.Context, userID, skillID uuid.UUID) (bool, error) {
	_, ok := f.userSkills[userID][skillID]
	return ok, nil
}

func (f *fakeSkillRepo) AddToUser(_ context.Context, us repository.UserSkill) (repository.UserSkill, error) {
	s := f.skills[us.SkillID]
	us.SkillName = s.Name
	us.CategoryName = s.CategoryName
	if f.userSkills[us.UserID] == nil {
		f.userSkills[us.UserID] = make(map[uuid.UUID]repository.UserSkill)
	}
	f.userSkills[us.UserID][us.SkillID] = us
	return us, nil
}

func (f *fakeSkillRepo) RemoveFromUser(_ context.Context, userID, skillID uuid.UUID) error {
	if _, ok := f.userSkills[userID][skillID]; !ok {
		return repository.ErrUserSkillNotFound
	}
	delete(f.userSkills[userID], skillID)
	return nil
}

type captureNotifier struct {
	events []notify.ExchangeEvent
}

func (n *captureNotifier) Publish(_ context.Context, evt notify.ExchangeEvent) {
	n.events = append(n.events, evt)
}
