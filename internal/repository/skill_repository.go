package repository

import (
	"context"
	"errors"

	"skillswap/internal/database"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound     = errors.New("skill not found")
	ErrUserSkillNotFound = errors.New("user skill not found")
)

type Skill struct {
	ID           uuid.UUID
	CategoryID   uuid.UUID
	Name         string
	Description  string
	CategoryName string
}

type UserSkill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillID          uuid.UUID
	ProficiencyLevel int
	Notes            string

	SkillName    string
	CategoryName string
}

type SkillRepository interface {
	ListAll(ctx context.Context) ([]Skill, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]UserSkill, error)
	HasUserSkill(ctx context.Context, userID, skillID uuid.UUID) (bool, error)
	AddToUser(ctx context.Context, us UserSkill) (UserSkill, error)
	RemoveFromUser(ctx context.Context, userID, skillID uuid.UUID) error
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListAll(ctx context.Context) ([]Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.category_id, s.name, COALESCE(s.description, ''), c.name
		 FROM skills s
		 JOIN categories c ON c.id = s.category_id
		 ORDER BY c.name, s.name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]UserSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.id, us.user_id, us.skill_id, COALESCE(us.proficiency_level, 0), COALESCE(us.notes, ''),
		        s.name, c.name
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 JOIN categories c ON c.id = s.category_id
		 WHERE us.user_id = $1
		 ORDER BY c.name, s.name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserSkill, 0)
	for rows.Next() {
		var us UserSkill
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.ProficiencyLevel, &us.Notes, &us.SkillName, &us.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) HasUserSkill(ctx context.Context, userID, skillID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_skills WHERE user_id = $1 AND skill_id = $2)`,
		userID, skillID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) AddToUser(ctx context.Context, us UserSkill) (UserSkill, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, proficiency_level, notes)
		 VALUES ($1, $2, $3, $4, $5)`,
		us.ID, us.UserID, us.SkillID, us.ProficiencyLevel, us.Notes,
	)
	if err != nil {
		return UserSkill{}, err
	}

	row := r.db.QueryRow(ctx,
		`SELECT us.id, us.user_id, us.skill_id, COALESCE(us.proficiency_level, 0), COALESCE(us.notes, ''),
		        s.name, c.name
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 JOIN categories c ON c.id = s.category_id
		 WHERE us.id = $1`,
		us.ID,
	)

	var created UserSkill
	if err := row.Scan(&created.ID, &created.UserID, &created.SkillID, &created.ProficiencyLevel, &created.Notes, &created.SkillName, &created.CategoryName); err != nil {
		return UserSkill{}, err
	}
	return created, nil
}

func (r *PostgresSkillRepository) RemoveFromUser(ctx context.Context, userID, skillID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}
