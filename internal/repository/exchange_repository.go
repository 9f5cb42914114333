package repository

import (
	"context"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/domain/exchange"

	"github.com/google/uuid"
)

var ErrExchangeNotFound = errors.New("exchange not found")

// ExchangeDetail is the joined read-side view of an exchange: the underlying
// offering, its skill and category, both participants, and the requester's
// request when one backs the exchange.
type ExchangeDetail struct {
	exchange.Exchange

	OfferingTitle        string
	OfferingDescription  string
	OfferingMode         string
	OfferingAvailability string
	SkillName            string
	CategoryName         string

	ProviderName   string
	ProviderEmail  string
	RequesterName  string
	RequesterEmail string

	RequestTitle       *string
	RequestDescription *string
	RequestUrgency     *string
	RequestTimeframe   *string
}

type ExchangeRepository interface {
	Insert(ctx context.Context, e exchange.Exchange) error
	FindByID(ctx context.Context, id uuid.UUID) (exchange.Exchange, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (ExchangeDetail, error)
	ListDetailsForUser(ctx context.Context, userID uuid.UUID) ([]ExchangeDetail, error)
	ListRecentForUser(ctx context.Context, userID uuid.UUID, limit int) ([]ExchangeDetail, error)

	// CompareAndSetStatus updates the status only if the row still holds the
	// expected value. It reports false when the row exists but the status
	// changed underneath the caller.
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next exchange.Status) (bool, error)

	Delete(ctx context.Context, id uuid.UUID) error
	ExistsForOffering(ctx context.Context, offeringID uuid.UUID) (bool, error)
	ExistsForRequest(ctx context.Context, requestID uuid.UUID) (bool, error)
	CountForUserByStatus(ctx context.Context, userID uuid.UUID, status exchange.Status) (int, error)
}

const exchangeDetailSelect = `
	SELECT e.id, e.provider_id, e.requester_id, e.offering_id, e.request_id,
	       e.status, e.created_at, e.updated_at,
	       o.title, o.description, o.mode, COALESCE(o.availability, ''),
	       s.name, c.name,
	       pp.full_name, pu.email,
	       rp.full_name, ru.email,
	       r.title, r.description, r.urgency, r.preferred_timeframe
	FROM exchanges e
	JOIN skill_offerings o ON o.id = e.offering_id
	JOIN skills s ON s.id = o.skill_id
	JOIN categories c ON c.id = s.category_id
	JOIN user_profiles pp ON pp.user_id = e.provider_id
	JOIN users pu ON pu.id = e.provider_id
	JOIN user_profiles rp ON rp.user_id = e.requester_id
	JOIN users ru ON ru.id = e.requester_id
	LEFT JOIN skill_requests r ON r.id = e.request_id`

type PostgresExchangeRepository struct {
	db database.DB
}

func NewPostgresExchangeRepository(db database.DB) *PostgresExchangeRepository {
	return &PostgresExchangeRepository{db: db}
}

func (r *PostgresExchangeRepository) Insert(ctx context.Context, e exchange.Exchange) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO exchanges (id, provider_id, requester_id, offering_id, request_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.ProviderID, e.RequesterID, e.OfferingID, e.RequestID, e.Status,
	)
	return err
}

func (r *PostgresExchangeRepository) FindByID(ctx context.Context, id uuid.UUID) (exchange.Exchange, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, provider_id, requester_id, offering_id, request_id, status, created_at, updated_at
		 FROM exchanges WHERE id = $1`,
		id,
	)

	var e exchange.Exchange
	var status string
	if err := row.Scan(&e.ID, &e.ProviderID, &e.RequesterID, &e.OfferingID, &e.RequestID, &status, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if isNoRows(err) {
			return exchange.Exchange{}, ErrExchangeNotFound
		}
		return exchange.Exchange{}, err
	}
	e.Status = exchange.Status(status)
	return e, nil
}

func (r *PostgresExchangeRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (ExchangeDetail, error) {
	row := r.db.QueryRow(ctx, exchangeDetailSelect+` WHERE e.id = $1`, id)

	d, err := scanExchangeDetail(row)
	if err != nil {
		if isNoRows(err) {
			return ExchangeDetail{}, ErrExchangeNotFound
		}
		return ExchangeDetail{}, err
	}
	return d, nil
}

func (r *PostgresExchangeRepository) ListDetailsForUser(ctx context.Context, userID uuid.UUID) ([]ExchangeDetail, error) {
	rows, err := r.db.Query(ctx, exchangeDetailSelect+`
	WHERE e.provider_id = $1 OR e.requester_id = $1
	ORDER BY
	  CASE
	    WHEN e.status = 'pending' THEN 1
	    WHEN e.status = 'accepted' THEN 2
	    WHEN e.status = 'completed' THEN 3
	    ELSE 4
	  END,
	  e.updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExchangeDetails(rows)
}

func (r *PostgresExchangeRepository) ListRecentForUser(ctx context.Context, userID uuid.UUID, limit int) ([]ExchangeDetail, error) {
	rows, err := r.db.Query(ctx, exchangeDetailSelect+`
	WHERE e.provider_id = $1 OR e.requester_id = $1
	ORDER BY e.updated_at DESC
	LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExchangeDetails(rows)
}

func (r *PostgresExchangeRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next exchange.Status) (bool, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE exchanges SET status = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND status = $3`,
		next, id, expected,
	)
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *PostgresExchangeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx, `DELETE FROM exchanges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrExchangeNotFound
	}
	return nil
}

func (r *PostgresExchangeRepository) ExistsForOffering(ctx context.Context, offeringID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM exchanges WHERE offering_id = $1)`, offeringID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresExchangeRepository) ExistsForRequest(ctx context.Context, requestID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM exchanges WHERE request_id = $1)`, requestID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresExchangeRepository) CountForUserByStatus(ctx context.Context, userID uuid.UUID, status exchange.Status) (int, error) {
	var n int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM exchanges
		 WHERE (provider_id = $1 OR requester_id = $1) AND status = $2`,
		userID, status,
	)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanExchangeDetails(rows database.Rows) ([]ExchangeDetail, error) {
	out := make([]ExchangeDetail, 0)
	for rows.Next() {
		d, err := scanExchangeDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanExchangeDetail(s scanner) (ExchangeDetail, error) {
	var d ExchangeDetail
	var status string
	err := s.Scan(
		&d.ID, &d.ProviderID, &d.RequesterID, &d.OfferingID, &d.RequestID,
		&status, &d.CreatedAt, &d.UpdatedAt,
		&d.OfferingTitle, &d.OfferingDescription, &d.OfferingMode, &d.OfferingAvailability,
		&d.SkillName, &d.CategoryName,
		&d.ProviderName, &d.ProviderEmail,
		&d.RequesterName, &d.RequesterEmail,
		&d.RequestTitle, &d.RequestDescription, &d.RequestUrgency, &d.RequestTimeframe,
	)
	if err != nil {
		return ExchangeDetail{}, err
	}
	d.Status = exchange.Status(status)
	return d, nil
}
