package bones

import (
	"math"
	"testing"
)

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-3 }

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{in: "#ff0000", want: RGBA{R: 1, A: 1}},
		{in: "00ff00", want: RGBA{G: 1, A: 1}},
		{in: "#00f", want: RGBA{B: 1, A: 1}},
		{in: "#FFFFFF90", want: RGBA{R: 1, G: 1, B: 1, A: 0.5647059}},
		{in: " #00000000 ", want: RGBA{}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", tt.in, err)
		}
		if !near(got.R, tt.want.R) || !near(got.G, tt.want.G) || !near(got.B, tt.want.B) || !near(got.A, tt.want.A) {
			t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseHexRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "#zzzzzz", "#ff0000zz", "red"} {
		if _, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q) expected error", in)
		}
	}
}

func TestHex(t *testing.T) {
	if got := (RGBA{R: 1, G: 1, B: 1, A: 0.5647059}).Hex(); got != "#ffffff90" {
		t.Fatalf("Hex = %s", got)
	}
	if got := (RGBA{R: 2, G: -1, B: 0.5, A: 1}).Hex(); got != "#ff0080ff" {
		t.Fatalf("Hex should clamp, got %s", got)
	}
	if got := (RGBA{R: 1, A: 0.2}).RGBHex(); got != "#ff0000" {
		t.Fatalf("RGBHex = %s", got)
	}
}

func TestRegistryKeepsInsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.Add("Tail", RGBA{})
	r.Add("Head", RGBA{})
	first := r.Add("Tail", RGBA{R: 1})
	if first.DefaultColor != (RGBA{}) {
		t.Fatalf("re-adding must keep the first default color")
	}
	cats := r.Categories()
	if len(cats) != 2 || cats[0].Name != "Tail" || cats[1].Name != "Head" {
		t.Fatalf("unexpected order: %+v", cats)
	}
	if r.Index("Head") != 1 || r.Index("Wings") != -1 {
		t.Fatalf("Index(Head) = %d, Index(Wings) = %d", r.Index("Head"), r.Index("Wings"))
	}
}

func TestRegistryObserve(t *testing.T) {
	r := NewRegistry()
	r.Add("Head", RGBA{R: 1, A: 1})
	if c, _ := r.Get("Head"); c.ShouldDisplay {
		t.Fatalf("new category must start hidden")
	}
	r.Observe("Head")
	if c, _ := r.Get("Head"); !c.ShouldDisplay || c.DefaultColor != (RGBA{R: 1, A: 1}) {
		t.Fatalf("observe should mark displayed and keep default: %+v", c)
	}
	wings := r.Observe("Wings")
	if !wings.ShouldDisplay || wings.DefaultColor != FallbackColor {
		t.Fatalf("lazily added category: %+v", wings)
	}
	if r.Len() != 2 {
		t.Fatalf("len = %d", r.Len())
	}
}

func TestRegistrySuggest(t *testing.T) {
	r := NewDefaultRegistry()
	if got := r.Suggest("hed"); got != "Head" {
		t.Fatalf("Suggest(hed) = %q", got)
	}
	if got := r.Suggest("left hnd"); got != "Left hand" {
		t.Fatalf("Suggest(left hnd) = %q", got)
	}
	if got := r.Suggest("completely unrelated"); got != "" {
		t.Fatalf("expected no suggestion, got %q", got)
	}
	if got := NewRegistry().Suggest("head"); got != "" {
		t.Fatalf("empty registry suggested %q", got)
	}
}

func TestDefaultCatalog(t *testing.T) {
	entries := DefaultCatalog()
	if len(entries) == 0 {
		t.Fatalf("catalog is empty")
	}
	if entries[0].Name != "Body" {
		t.Fatalf("first category = %q", entries[0].Name)
	}
	r := NewDefaultRegistry()
	if r.Len() != len(entries) {
		t.Fatalf("registry len %d, catalog len %d", r.Len(), len(entries))
	}
	for _, c := range r.Categories() {
		if c.ShouldDisplay {
			t.Fatalf("%s displayed before any bone was drawn", c.Name)
		}
	}
}

func TestParseCatalogErrors(t *testing.T) {
	cases := map[string]string{
		"missing name": "[[category]]\ncolor = \"#fff\"\n",
		"duplicate":    "[[category]]\nname = \"A\"\ncolor = \"#fff\"\n[[category]]\nname = \"A\"\ncolor = \"#000\"\n",
		"bad color":    "[[category]]\nname = \"A\"\ncolor = \"nope\"\n",
		"bad toml":     "[[category]\n",
	}
	for name, data := range cases {
		if _, err := parseCatalog(data); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
