package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/ktisis/internal/bones"
	"github.com/jask/ktisis/internal/database/repository"
)

// CategoryID derives the stable row id for a bone category name.
func CategoryID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("bone-category:"+name)).String()
}

// SeedDefaults ensures the built-in bone categories exist for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := repository.NewBoneCategoryRepo(db)
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for idx, e := range bones.DefaultCatalog() {
		c := repository.BoneCategory{
			ID:           CategoryID(e.Name),
			Name:         e.Name,
			DefaultColor: e.DefaultColor.Hex(),
			SortOrder:    idx,
		}
		if err := repo.Upsert(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
