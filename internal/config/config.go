package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/jask/ktisis/internal/bones"
)

const (
	MinLineThickness = 0.01
	MaxLineThickness = 15
)

// Languages lists the localizations the overlay ships, in display order.
var Languages = []language.Tag{language.English, language.German, language.French, language.Japanese}

// Config holds the overlay configuration.
type Config struct {
	Interface InterfaceConfig
	Overlay   OverlayConfig
	Gizmo     GizmoConfig
	Language  LanguageConfig
	Database  DatabaseConfig
}

// InterfaceConfig holds window-level preferences.
type InterfaceConfig struct {
	DisplayCharName bool
}

// OverlayConfig holds skeleton drawing settings, including bone colors.
type OverlayConfig struct {
	DrawLinesOnSkeleton   bool
	SkeletonLineThickness float32

	LinkBoneCategoryColors  bool
	LinkedBoneCategoryColor bones.RGBA
	// BoneCategoryColors only holds categories the user customized.
	BoneCategoryColors map[string]bones.RGBA
}

// GizmoConfig holds manipulation gizmo settings.
type GizmoConfig struct {
	AllowAxisFlip bool
}

// LanguageConfig holds localization settings.
type LanguageConfig struct {
	Localization   language.Tag
	TranslateBones bool
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// fileConfig mirrors the on-disk layout; colors and tags are strings there.
type fileConfig struct {
	Interface struct {
		DisplayCharName bool `mapstructure:"display_char_name"`
	} `mapstructure:"interface"`
	Overlay struct {
		DrawLinesOnSkeleton     bool              `mapstructure:"draw_lines_on_skeleton"`
		SkeletonLineThickness   float32           `mapstructure:"skeleton_line_thickness"`
		LinkBoneCategoryColors  bool              `mapstructure:"link_bone_category_colors"`
		LinkedBoneCategoryColor string            `mapstructure:"linked_bone_category_color"`
		BoneCategoryColors      []colorEntry      `mapstructure:"bone_category_colors"`
	} `mapstructure:"overlay"`
	Gizmo struct {
		AllowAxisFlip bool `mapstructure:"allow_axis_flip"`
	} `mapstructure:"gizmo"`
	Language struct {
		Localization   string `mapstructure:"localization"`
		TranslateBones bool   `mapstructure:"translate_bones"`
	} `mapstructure:"language"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
}

// colorEntry is one category override. Overrides are stored as an array of
// tables because viper lowercases map keys and category names keep their case.
type colorEntry struct {
	Name  string `mapstructure:"name"`
	Color string `mapstructure:"color"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Interface: InterfaceConfig{DisplayCharName: true},
		Overlay: OverlayConfig{
			DrawLinesOnSkeleton:     true,
			SkeletonLineThickness:   0.1,
			LinkedBoneCategoryColor: bones.FallbackColor,
			BoneCategoryColors:      map[string]bones.RGBA{},
		},
		Gizmo:    GizmoConfig{AllowAxisFlip: true},
		Language: LanguageConfig{Localization: language.English, TranslateBones: true},
		Database: DatabaseConfig{Path: filepath.Join(os.Getenv("HOME"), ".local", "share", "ktisis", "ktisis.db")},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("interface.display_char_name", d.Interface.DisplayCharName)
	v.SetDefault("overlay.draw_lines_on_skeleton", d.Overlay.DrawLinesOnSkeleton)
	v.SetDefault("overlay.skeleton_line_thickness", d.Overlay.SkeletonLineThickness)
	v.SetDefault("overlay.link_bone_category_colors", d.Overlay.LinkBoneCategoryColors)
	v.SetDefault("overlay.linked_bone_category_color", d.Overlay.LinkedBoneCategoryColor.Hex())
	v.SetDefault("gizmo.allow_axis_flip", d.Gizmo.AllowAxisFlip)
	v.SetDefault("language.localization", d.Language.Localization.String())
	v.SetDefault("language.translate_bones", d.Language.TranslateBones)
	v.SetDefault("database.path", d.Database.Path)
}

// Path returns the config file location. KTISIS_CONFIG overrides the default.
func Path() string {
	if p := os.Getenv("KTISIS_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "ktisis", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix KTISIS_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("KTISIS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !isMissing(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return fromFile(raw)
}

func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func fromFile(raw fileConfig) (Config, error) {
	cfg := Default()
	cfg.Interface.DisplayCharName = raw.Interface.DisplayCharName
	cfg.Overlay.DrawLinesOnSkeleton = raw.Overlay.DrawLinesOnSkeleton
	cfg.Overlay.SkeletonLineThickness = ClampLineThickness(raw.Overlay.SkeletonLineThickness)
	cfg.Overlay.LinkBoneCategoryColors = raw.Overlay.LinkBoneCategoryColors

	linked, err := bones.ParseHex(raw.Overlay.LinkedBoneCategoryColor)
	if err != nil {
		return Config{}, fmt.Errorf("overlay.linked_bone_category_color: %w", err)
	}
	cfg.Overlay.LinkedBoneCategoryColor = linked

	cfg.Overlay.BoneCategoryColors = make(map[string]bones.RGBA, len(raw.Overlay.BoneCategoryColors))
	for _, e := range raw.Overlay.BoneCategoryColors {
		if e.Name == "" {
			return Config{}, fmt.Errorf("overlay.bone_category_colors: entry without name")
		}
		col, err := bones.ParseHex(e.Color)
		if err != nil {
			return Config{}, fmt.Errorf("overlay.bone_category_colors %q: %w", e.Name, err)
		}
		cfg.Overlay.BoneCategoryColors[e.Name] = col
	}

	cfg.Gizmo.AllowAxisFlip = raw.Gizmo.AllowAxisFlip

	tag, err := language.Parse(raw.Language.Localization)
	if err != nil {
		return Config{}, fmt.Errorf("language.localization: %w", err)
	}
	cfg.Language.Localization = tag
	cfg.Language.TranslateBones = raw.Language.TranslateBones

	if raw.Database.Path != "" {
		cfg.Database.Path = raw.Database.Path
	}
	return cfg, nil
}

// Save writes the provided config to Path(), creating the config directory if needed.
func Save(cfg Config) error {
	return SaveAs(cfg, Path())
}

// SaveAs writes the provided config to path, replacing it atomically.
func SaveAs(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("interface.display_char_name", cfg.Interface.DisplayCharName)
	v.Set("overlay.draw_lines_on_skeleton", cfg.Overlay.DrawLinesOnSkeleton)
	v.Set("overlay.skeleton_line_thickness", ClampLineThickness(cfg.Overlay.SkeletonLineThickness))
	v.Set("overlay.link_bone_category_colors", cfg.Overlay.LinkBoneCategoryColors)
	v.Set("overlay.linked_bone_category_color", cfg.Overlay.LinkedBoneCategoryColor.Hex())
	v.Set("overlay.bone_category_colors", colorTable(cfg.Overlay.BoneCategoryColors))
	v.Set("gizmo.allow_axis_flip", cfg.Gizmo.AllowAxisFlip)
	v.Set("language.localization", cfg.Language.Localization.String())
	v.Set("language.translate_bones", cfg.Language.TranslateBones)
	v.Set("database.path", cfg.Database.Path)

	// Write beside path and rename over it so readers never see a partial file.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.toml")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	if err := v.WriteConfigAs(tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// colorTable renders overrides sorted by name so saves are stable.
func colorTable(colors map[string]bones.RGBA) []map[string]any {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]map[string]any, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]any{"name": name, "color": colors[name].Hex()})
	}
	return out
}

// Clone returns a copy that shares no maps with cfg.
func (cfg Config) Clone() Config {
	out := cfg
	out.Overlay.BoneCategoryColors = make(map[string]bones.RGBA, len(cfg.Overlay.BoneCategoryColors))
	for k, v := range cfg.Overlay.BoneCategoryColors {
		out.Overlay.BoneCategoryColors[k] = v
	}
	return out
}

// ClampLineThickness limits v to the range the overlay can draw.
func ClampLineThickness(v float32) float32 {
	if v < MinLineThickness {
		return MinLineThickness
	}
	if v > MaxLineThickness {
		return MaxLineThickness
	}
	return v
}
