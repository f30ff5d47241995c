package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jask/ktisis/internal/bones"
	"github.com/jask/ktisis/internal/database"
	"github.com/jask/ktisis/internal/database/repository"
)

// SkeletonService is the skeleton renderer's side of the category registry.
// Categories discovered in earlier sessions come back from the catalog, but
// every session starts with nothing displayed.
type SkeletonService struct {
	Categories *repository.BoneCategoryRepo
}

// LoadRegistry builds a registry from the catalog.
func (s *SkeletonService) LoadRegistry(ctx context.Context) (*bones.Registry, error) {
	rows, err := s.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bone categories: %w", err)
	}
	reg := bones.NewRegistry()
	for _, row := range rows {
		col, err := bones.ParseHex(row.DefaultColor)
		if err != nil {
			return nil, fmt.Errorf("bone category %q: %w", row.Name, err)
		}
		reg.Add(row.Name, col)
	}
	return reg, nil
}

// ObserveBone marks the category of a drawn bone as displayed. The catalog
// is written first, so a failed write leaves the registry untouched. A
// category missing from the catalog, whether new or forgotten by a reset,
// is catalogued again.
func (s *SkeletonService) ObserveBone(ctx context.Context, reg *bones.Registry, name string) (*bones.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("observe bone: empty category name")
	}

	seen := database.Now()
	found, err := s.Categories.Touch(ctx, name, seen)
	if err != nil {
		return nil, fmt.Errorf("touch bone category %q: %w", name, err)
	}
	if !found {
		defaultColor, order := bones.FallbackColor, reg.Len()
		if c, ok := reg.Get(name); ok {
			defaultColor, order = c.DefaultColor, reg.Index(name)
		}
		row := repository.BoneCategory{
			ID:           database.CategoryID(name),
			Name:         name,
			DefaultColor: defaultColor.Hex(),
			SortOrder:    order,
			LastSeen:     &seen,
		}
		if err := s.Categories.Upsert(ctx, row); err != nil {
			return nil, fmt.Errorf("catalog bone category %q: %w", name, err)
		}
	}
	return reg.Observe(name), nil
}
