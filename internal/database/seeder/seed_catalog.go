package seeder

import (
	"context"
	"fmt"

	"skillswap/internal/database"
)

// CatalogSeeder populates the category and skill lookup tables students
// browse when posting offerings and requests.
type CatalogSeeder struct{}

func (CatalogSeeder) Name() string { return "catalog" }

var catalog = []struct {
	Category string
	Skills   []string
}{
	{Category: "Programming", Skills: []string{"Go", "Python", "JavaScript", "Java", "C++"}},
	{Category: "Languages", Skills: []string{"English Conversation", "Mandarin", "Spanish", "French"}},
	{Category: "Music", Skills: []string{"Guitar", "Piano", "Singing", "Music Production"}},
	{Category: "Academics", Skills: []string{"Calculus", "Statistics", "Physics", "Academic Writing"}},
	{Category: "Design", Skills: []string{"UI Design", "Photoshop", "Video Editing"}},
	{Category: "Sports", Skills: []string{"Badminton", "Basketball", "Swimming"}},
}

func (CatalogSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "categories", "id", "name"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "skills", "id", "category_id", "name"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, group := range catalog {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO categories (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT (name) DO NOTHING`,
			group.Category,
		); err != nil {
			return err
		}

		for _, skill := range group.Skills {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO skills (id, category_id, name)
				 SELECT gen_random_uuid(), c.id, $2 FROM categories c WHERE c.name = $1
				 ON CONFLICT (name) DO NOTHING`,
				group.Category,
				skill,
			); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
