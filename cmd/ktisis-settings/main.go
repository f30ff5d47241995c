package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/ktisis/internal/bones"
	"github.com/jask/ktisis/internal/config"
	"github.com/jask/ktisis/internal/database"
	"github.com/jask/ktisis/internal/database/repository"
	"github.com/jask/ktisis/internal/service"
	"github.com/jask/ktisis/internal/tui"
)

func main() {
	migrations := flag.String("migrations", "internal/database/migrations", "path to the sql migrations")
	observeList := flag.String("observe", "", "comma-separated bone categories to mark as drawn")
	importPlates := flag.String("import-plates", "", "JSON file of glamour plates to load into memory")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, *migrations); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	// services
	skeleton := &service.SkeletonService{Categories: repository.NewBoneCategoryRepo(db)}
	plates := &service.PlateService{Plates: repository.NewGlamourPlateRepo(db)}
	maintenance := &service.MaintenanceService{DB: db}

	reg, err := skeleton.LoadRegistry(ctx)
	if err != nil {
		log.Fatalf("load bone categories: %v", err)
	}
	observeCategories(ctx, skeleton, reg, *observeList)

	if *importPlates != "" {
		if err := loadPlates(ctx, plates, *importPlates); err != nil {
			log.Fatalf("import plates: %v", err)
		}
	}

	p := tea.NewProgram(tui.New(ctx, cfg, reg,
		tui.Services{Skeleton: skeleton, Plates: plates, Maintenance: maintenance},
		config.Save,
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// observeCategories marks each listed category as drawn. Unknown names are
// still added, with a warning when they look like a typo of a known one.
func observeCategories(ctx context.Context, skeleton *service.SkeletonService, reg *bones.Registry, list string) {
	for _, raw := range strings.Split(list, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := reg.Get(name); !ok {
			if s := reg.Suggest(name); s != "" {
				log.Printf("warn: unknown bone category %q (did you mean %q?)", name, s)
			}
		}
		if _, err := skeleton.ObserveBone(ctx, reg, name); err != nil {
			log.Printf("warn: observe %q: %v", name, err)
		}
	}
}

func loadPlates(ctx context.Context, plates *service.PlateService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	res, err := plates.Import(ctx, f)
	if err != nil {
		return err
	}
	for _, e := range res.Errors {
		log.Printf("warn: %s: %v", filepath.Base(path), e)
	}
	log.Printf("imported %d glamour plates, skipped %d", res.Imported, res.Skipped)
	return nil
}
