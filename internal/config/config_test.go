package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jask/ktisis/internal/bones"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("KTISIS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Interface.DisplayCharName)
	require.True(t, cfg.Overlay.DrawLinesOnSkeleton)
	require.InDelta(t, 0.1, cfg.Overlay.SkeletonLineThickness, 1e-6)
	require.False(t, cfg.Overlay.LinkBoneCategoryColors)
	require.Equal(t, "#ffffff90", cfg.Overlay.LinkedBoneCategoryColor.Hex())
	require.Empty(t, cfg.Overlay.BoneCategoryColors)
	require.NotNil(t, cfg.Overlay.BoneCategoryColors)
	require.True(t, cfg.Gizmo.AllowAxisFlip)
	require.Equal(t, "en", cfg.Language.Localization.String())
	require.True(t, cfg.Language.TranslateBones)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("KTISIS_CONFIG", path)

	cfg := Default()
	cfg.Interface.DisplayCharName = false
	cfg.Overlay.SkeletonLineThickness = 2.5
	cfg.Overlay.LinkBoneCategoryColors = true
	cfg.Overlay.LinkedBoneCategoryColor = bones.MustParseHex("#00ff00ff")
	cfg.Overlay.BoneCategoryColors["Right hand"] = bones.MustParseHex("#ff000080")
	cfg.Overlay.BoneCategoryColors["Head"] = bones.MustParseHex("#0000ffff")
	cfg.Gizmo.AllowAxisFlip = false
	cfg.Language.Localization = language.Japanese
	cfg.Database.Path = filepath.Join(t.TempDir(), "k.db")

	require.NoError(t, Save(cfg))
	_, err := os.Stat(path)
	require.NoError(t, err)

	got, err := Load()
	require.NoError(t, err)
	require.False(t, got.Interface.DisplayCharName)
	require.InDelta(t, 2.5, got.Overlay.SkeletonLineThickness, 1e-6)
	require.True(t, got.Overlay.LinkBoneCategoryColors)
	require.Equal(t, "#00ff00ff", got.Overlay.LinkedBoneCategoryColor.Hex())
	require.Len(t, got.Overlay.BoneCategoryColors, 2)
	require.Equal(t, "#ff000080", got.Overlay.BoneCategoryColors["Right hand"].Hex())
	require.Equal(t, "#0000ffff", got.Overlay.BoneCategoryColors["Head"].Hex())
	require.False(t, got.Gizmo.AllowAxisFlip)
	require.Equal(t, "ja", got.Language.Localization.String())
	require.Equal(t, cfg.Database.Path, got.Database.Path)
}

func TestLoadRejectsMalformedColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("KTISIS_CONFIG", path)
	data := `
[overlay]
linked_bone_category_color = "#ffffff90"

[[overlay.bone_category_colors]]
name = "Head"
color = "not-a-color"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "Head")
}

func TestLoadClampsLineThickness(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("KTISIS_CONFIG", path)
	require.NoError(t, os.WriteFile(path, []byte("[overlay]\nskeleton_line_thickness = 40.0\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	require.InDelta(t, MaxLineThickness, cfg.Overlay.SkeletonLineThickness, 1e-6)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("KTISIS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("KTISIS_GIZMO_ALLOW_AXIS_FLIP", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.Gizmo.AllowAxisFlip)
}

func TestCloneDoesNotShareOverrides(t *testing.T) {
	cfg := Default()
	cfg.Overlay.BoneCategoryColors["Head"] = bones.RGBA{R: 1, A: 1}
	cp := cfg.Clone()
	cp.Overlay.BoneCategoryColors["Tail"] = bones.RGBA{B: 1, A: 1}
	require.Len(t, cfg.Overlay.BoneCategoryColors, 1)
	require.Len(t, cp.Overlay.BoneCategoryColors, 2)
}

func TestClampLineThickness(t *testing.T) {
	require.InDelta(t, MinLineThickness, ClampLineThickness(0), 1e-6)
	require.InDelta(t, 3.0, ClampLineThickness(3), 1e-6)
	require.InDelta(t, MaxLineThickness, ClampLineThickness(100), 1e-6)
}

func TestConcurrentSavesLeaveReadableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	t.Setenv("KTISIS_CONFIG", path)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(step int) {
			defer wg.Done()
			cfg := Default()
			cfg.Overlay.SkeletonLineThickness = float32(step) / 10
			require.NoError(t, SaveAs(cfg, path))
		}(i)
	}
	wg.Wait()

	cfg, err := Load()
	require.NoError(t, err)
	require.GreaterOrEqual(t, cfg.Overlay.SkeletonLineThickness, float32(0.09))
	require.LessOrEqual(t, cfg.Overlay.SkeletonLineThickness, float32(2.01))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}
