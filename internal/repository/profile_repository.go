package repository

import (
	"context"
	"errors"

	"skillswap/internal/database"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile is a read-only lookup used for display names and contact
// addresses; profile mutation belongs to the account service.
type Profile struct {
	UserID   uuid.UUID
	FullName string
	Email    string
	Bio      string
	Campus   string
}

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT p.user_id, p.full_name, u.email, COALESCE(p.bio, ''), COALESCE(p.campus, '')
		 FROM user_profiles p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = $1`,
		userID,
	)

	var p Profile
	if err := row.Scan(&p.UserID, &p.FullName, &p.Email, &p.Bio, &p.Campus); err != nil {
		if isNoRows(err) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, err
	}
	return p, nil
}
