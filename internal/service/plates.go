package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/ktisis/internal/database"
	"github.com/jask/ktisis/internal/database/repository"
)

// PlateService keeps the glamour plate memory used for set lookups.
type PlateService struct {
	Plates *repository.GlamourPlateRepo
}

type PlateImportResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// PlateSummary is what the Data tab shows.
type PlateSummary struct {
	Count      int
	CapturedAt time.Time
}

type plateRecord struct {
	Slot  int      `json:"slot"`
	Name  string   `json:"name"`
	Items []uint32 `json:"items"`
}

// Import replaces the stored plates with the JSON array read from r. Records
// without a name or with a slot that was already seen are skipped.
func (s *PlateService) Import(ctx context.Context, r io.Reader) (PlateImportResult, error) {
	var records []plateRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return PlateImportResult{}, fmt.Errorf("decode plates: %w", err)
	}

	res := PlateImportResult{}
	now := database.Now()
	seen := make(map[int]bool, len(records))
	plates := make([]repository.GlamourPlate, 0, len(records))
	for i, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Errorf("plate %d: missing name", i))
			continue
		}
		if rec.Slot <= 0 {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Errorf("plate %d: slot must be positive", i))
			continue
		}
		if seen[rec.Slot] {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Errorf("plate %d: duplicate slot %d", i, rec.Slot))
			continue
		}
		seen[rec.Slot] = true
		items := rec.Items
		if items == nil {
			items = []uint32{}
		}
		plates = append(plates, repository.GlamourPlate{
			ID:         uuid.NewString(),
			Slot:       rec.Slot,
			Name:       name,
			Items:      items,
			CapturedAt: now,
		})
	}
	if err := s.Plates.ReplaceAll(ctx, plates); err != nil {
		return res, fmt.Errorf("store plates: %w", err)
	}
	res.Imported = len(plates)
	return res, nil
}

func (s *PlateService) Summary(ctx context.Context) (PlateSummary, error) {
	n, last, err := s.Plates.Summary(ctx)
	if err != nil {
		return PlateSummary{}, fmt.Errorf("plate summary: %w", err)
	}
	return PlateSummary{Count: n, CapturedAt: last}, nil
}

// Dispose forgets every stored plate.
func (s *PlateService) Dispose(ctx context.Context) error {
	if err := s.Plates.DeleteAll(ctx); err != nil {
		return fmt.Errorf("dispose plates: %w", err)
	}
	return nil
}
