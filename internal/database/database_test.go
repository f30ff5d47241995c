package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/ktisis/internal/bones"
	"github.com/jask/ktisis/internal/database/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db, migrations))
	return db
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db, migrations))

	// the handle stays usable after migrating
	n, err := repository.NewBoneCategoryRepo(db).Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "ktisis.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	boom := errors.New("boom")

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO bone_categories(id, name, default_color, sort_order) VALUES ('x', 'Wings', '#ffffffff', 0)`)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := repository.NewBoneCategoryRepo(db).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSeedDefaults(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, SeedDefaults(ctx, db))
	require.NoError(t, SeedDefaults(ctx, db))

	repo := repository.NewBoneCategoryRepo(db)
	cats, err := repo.List(ctx)
	require.NoError(t, err)

	catalog := bones.DefaultCatalog()
	require.Len(t, cats, len(catalog))
	for i, e := range catalog {
		require.Equal(t, e.Name, cats[i].Name)
		require.Equal(t, e.DefaultColor.Hex(), cats[i].DefaultColor)
		require.Equal(t, CategoryID(e.Name), cats[i].ID)
		require.Nil(t, cats[i].LastSeen)
	}
}

func TestSeedDefaultsSkipsPopulatedCatalog(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := repository.NewBoneCategoryRepo(db)
	require.NoError(t, repo.Upsert(ctx, repository.BoneCategory{ID: CategoryID("Wings"), Name: "Wings", DefaultColor: "#ffffffff"}))

	require.NoError(t, SeedDefaults(ctx, db))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestBoneCategoryTouch(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, SeedDefaults(ctx, db))
	repo := repository.NewBoneCategoryRepo(db)

	seen := Now()
	found, err := repo.Touch(ctx, "Head", seen)
	require.NoError(t, err)
	require.True(t, found)

	found, err = repo.Touch(ctx, "Wings", seen)
	require.NoError(t, err)
	require.False(t, found, "touching an uncatalogued category reports it missing")

	cats, err := repo.List(ctx)
	require.NoError(t, err)
	for _, c := range cats {
		if c.Name == "Head" {
			require.NotNil(t, c.LastSeen)
			require.True(t, c.LastSeen.Equal(seen), "last seen %v, want %v", c.LastSeen, seen)
			continue
		}
		require.Nil(t, c.LastSeen, c.Name)
	}
}

func TestGlamourPlates(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := repository.NewGlamourPlateRepo(db)

	n, last, err := repo.Summary(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
	require.True(t, last.IsZero())

	older := Now().Add(-2 * time.Hour)
	newer := Now()
	plates := []repository.GlamourPlate{
		{ID: "b", Slot: 2, Name: "Casual", Items: []uint32{10, 20}, CapturedAt: older},
		{ID: "a", Slot: 1, Name: "Raid", Items: []uint32{30}, CapturedAt: newer},
	}
	require.NoError(t, repo.ReplaceAll(ctx, plates))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Raid", got[0].Name)
	require.Equal(t, []uint32{10, 20}, got[1].Items)

	n, last, err = repo.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.True(t, last.Equal(newer))

	require.NoError(t, repo.ReplaceAll(ctx, plates[:1]))
	n, _, err = repo.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, repo.DeleteAll(ctx))
	n, _, err = repo.Summary(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}
