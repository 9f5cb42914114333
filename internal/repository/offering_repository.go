package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"skillswap/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrOfferingNotFound = errors.New("offering not found")

type Offering struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	SkillID      uuid.UUID
	Title        string
	Description  string
	Mode         string
	Availability string
	Active       bool
	CreatedAt    time.Time

	SkillName    string
	CategoryName string
	OwnerName    string
}

type OfferingRepository interface {
	ListActive(ctx context.Context, f OfferingFilter) ([]Offering, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool, limit int) ([]Offering, error)
	FindByID(ctx context.Context, id uuid.UUID) (Offering, error)
	FindMatches(ctx context.Context, skillID uuid.UUID, excludeOwner uuid.UUID) ([]Offering, error)
	Create(ctx context.Context, o Offering) (Offering, error)
	Update(ctx context.Context, o Offering) (Offering, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	CountActiveByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}

const offeringJoinedSelect = `
	SELECT o.id, o.user_id, o.skill_id, o.title, o.description, o.mode,
	       COALESCE(o.availability, ''), o.is_active, o.created_at,
	       s.name, c.name, p.full_name
	FROM skill_offerings o
	JOIN skills s ON s.id = o.skill_id
	JOIN categories c ON c.id = s.category_id
	JOIN user_profiles p ON p.user_id = o.user_id`

type PostgresOfferingRepository struct {
	db database.DB
}

func NewPostgresOfferingRepository(db database.DB) *PostgresOfferingRepository {
	return &PostgresOfferingRepository{db: db}
}

func (r *PostgresOfferingRepository) ListActive(ctx context.Context, f OfferingFilter) ([]Offering, error) {
	p := f.predicates()
	query := offeringJoinedSelect + `
	WHERE o.is_active = TRUE` + p.clause() + `
	ORDER BY o.created_at DESC`

	rows, err := r.db.Query(ctx, query, p.arguments()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOfferings(rows)
}

func (r *PostgresOfferingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool, limit int) ([]Offering, error) {
	p := &predicates{}
	p.equal("o.user_id", ownerID)
	if activeOnly {
		p.equal("o.is_active", true)
	}

	query := offeringJoinedSelect + `
	WHERE TRUE` + p.clause() + `
	ORDER BY o.created_at DESC`
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
	return scanOfferings(rows)
}

func (r *PostgresOfferingRepository) FindByID(ctx context.Context, id uuid.UUID) (Offering, error) {
	row := r.db.QueryRow(ctx, offeringJoinedSelect+` WHERE o.id = $1`, id)

	o, err := scanOffering(row)
	if err != nil {
		if isNoRows(err) {
			return Offering{}, ErrOfferingNotFound
		}
		return Offering{}, err
	}
	return o, nil
}

// FindMatches returns active offerings for a skill, newest first, skipping
// the given owner's own offerings.
func (r *PostgresOfferingRepository) FindMatches(ctx context.Context, skillID uuid.UUID, excludeOwner uuid.UUID) ([]Offering, error) {
	rows, err := r.db.Query(ctx, offeringJoinedSelect+`
	WHERE o.is_active = TRUE AND o.skill_id = $1 AND o.user_id <> $2
	ORDER BY o.created_at DESC`,
		skillID, excludeOwner,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOfferings(rows)
}

func (r *PostgresOfferingRepository) Create(ctx context.Context, o Offering) (Offering, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skill_offerings (id, user_id, skill_id, title, description, mode, availability, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)`,
		o.ID, o.OwnerID, o.SkillID, o.Title, o.Description, o.Mode, o.Availability,
	)
	if err != nil {
		return Offering{}, err
	}
	return r.FindByID(ctx, o.ID)
}

func (r *PostgresOfferingRepository) Update(ctx context.Context, o Offering) (Offering, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE skill_offerings
		 SET title = $1, description = $2, mode = $3, availability = $4, is_active = $5
		 WHERE id = $6 AND user_id = $7`,
		o.Title, o.Description, o.Mode, o.Availability, o.Active, o.ID, o.OwnerID,
	)
	if err != nil {
		return Offering{}, err
	}
	if rowsAffected == 0 {
		return Offering{}, ErrOfferingNotFound
	}
	return r.FindByID(ctx, o.ID)
}

func (r *PostgresOfferingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx, `DELETE FROM skill_offerings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOfferingNotFound
	}
	return nil
}

func (r *PostgresOfferingRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx, `UPDATE skill_offerings SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOfferingNotFound
	}
	return nil
}

func (r *PostgresOfferingRepository) CountActiveByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM skill_offerings WHERE user_id = $1 AND is_active = TRUE`, ownerID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanOfferings(rows database.Rows) ([]Offering, error) {
	out := make([]Offering, 0)
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOffering(s scanner) (Offering, error) {
	var o Offering
	err := s.Scan(
		&o.ID, &o.OwnerID, &o.SkillID, &o.Title, &o.Description, &o.Mode,
		&o.Availability, &o.Active, &o.CreatedAt,
		&o.SkillName, &o.CategoryName, &o.OwnerName,
	)
	return o, err
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
