package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"skillswap/internal/database"

	"github.com/google/uuid"
)

var ErrRequestNotFound = errors.New("request not found")

type Request struct {
	ID                 uuid.UUID
	OwnerID            uuid.UUID
	SkillID            uuid.UUID
	Title              string
	Description        string
	Urgency            string
	PreferredTimeframe string
	Active             bool
	CreatedAt          time.Time

	SkillName    string
	CategoryName string
	OwnerName    string
}

type RequestRepository interface {
	ListActive(ctx context.Context, f RequestFilter) ([]Request, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool, limit int) ([]Request, error)
	FindByID(ctx context.Context, id uuid.UUID) (Request, error)
	Create(ctx context.Context, req Request) (Request, error)
	Update(ctx context.Context, req Request) (Request, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	CountActiveByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}

const requestJoinedSelect = `
	SELECT r.id, r.user_id, r.skill_id, r.title, r.description, r.urgency,
	       COALESCE(r.preferred_timeframe, ''), r.is_active, r.created_at,
	       s.name, c.name, p.full_name
	FROM skill_requests r
	JOIN skills s ON s.id = r.skill_id
	JOIN categories c ON c.id = s.category_id
	JOIN user_profiles p ON p.user_id = r.user_id`

// Public listings surface high urgency first, then newest.
const requestUrgencyOrder = `
	ORDER BY
	  CASE
	    WHEN r.urgency = 'high' THEN 1
	    WHEN r.urgency = 'medium' THEN 2
	    ELSE 3
	  END,
	  r.created_at DESC`

type PostgresRequestRepository struct {
	db database.DB
}

func NewPostgresRequestRepository(db database.DB) *PostgresRequestRepository {
	return &PostgresRequestRepository{db: db}
}

func (r *PostgresRequestRepository) ListActive(ctx context.Context, f RequestFilter) ([]Request, error) {
	p := f.predicates()
	query := requestJoinedSelect + `
	WHERE r.is_active = TRUE` + p.clause() + requestUrgencyOrder

	rows, err := r.db.Query(ctx, query, p.arguments()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *PostgresRequestRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool, limit int) ([]Request, error) {
	p := &predicates{}
	p.equal("r.user_id", ownerID)
	if activeOnly {
		p.equal("r.is_active", true)
	}

	query := requestJoinedSelect + `
	WHERE TRUE` + p.clause() + `
	ORDER BY r.created_at DESC`
	args := p.arguments()
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *PostgresRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (Request, error) {
	row := r.db.QueryRow(ctx, requestJoinedSelect+` WHERE r.id = $1`, id)

	req, err := scanRequest(row)
	if err != nil {
		if isNoRows(err) {
			return Request{}, ErrRequestNotFound
		}
		return Request{}, err
	}
	return req, nil
}

func (r *PostgresRequestRepository) Create(ctx context.Context, req Request) (Request, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skill_requests (id, user_id, skill_id, title, description, urgency, preferred_timeframe, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)`,
		req.ID, req.OwnerID, req.SkillID, req.Title, req.Description, req.Urgency, req.PreferredTimeframe,
	)
	if err != nil {
		return Request{}, err
	}
	return r.FindByID(ctx, req.ID)
}

func (r *PostgresRequestRepository) Update(ctx context.Context, req Request) (Request, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE skill_requests
		 SET title = $1, description = $2, urgency = $3, preferred_timeframe = $4, is_active = $5
		 WHERE id = $6 AND user_id = $7`,
		req.Title, req.Description, req.Urgency, req.PreferredTimeframe, req.Active, req.ID, req.OwnerID,
	)
	if err != nil {
		return Request{}, err
	}
	if rowsAffected == 0 {
		return Request{}, ErrRequestNotFound
	}
	return r.FindByID(ctx, req.ID)
}

func (r *PostgresRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx, `DELETE FROM skill_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *PostgresRequestRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx, `UPDATE skill_requests SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *PostgresRequestRepository) CountActiveByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM skill_requests WHERE user_id = $1 AND is_active = TRUE`, ownerID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanRequests(rows database.Rows) ([]Request, error) {
	out := make([]Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRequest(s scanner) (Request, error) {
	var req Request
	err := s.Scan(
		&req.ID, &req.OwnerID, &req.SkillID, &req.Title, &req.Description, &req.Urgency,
		&req.PreferredTimeframe, &req.Active, &req.CreatedAt,
		&req.SkillName, &req.CategoryName, &req.OwnerName,
	)
	return req, err
}
