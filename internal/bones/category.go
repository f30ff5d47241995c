package bones

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// FallbackColor is the default color given to categories that are not part
// of the built-in catalog.
var FallbackColor = RGBA{R: 1, G: 1, B: 1, A: 0.5647059}

// Category groups skeleton bones that share a display color.
type Category struct {
	Name          string
	ShouldDisplay bool
	DefaultColor  RGBA
}

// Registry is an insertion-ordered set of categories. Categories are added
// lazily as bones are drawn and are never removed.
type Registry struct {
	order  []*Category
	byName map[string]*Category
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]*Category{}}
}

// Add registers name with its default color. Adding a known name returns the
// existing category unchanged.
func (r *Registry) Add(name string, defaultColor RGBA) *Category {
	if c, ok := r.byName[name]; ok {
		return c
	}
	c := &Category{Name: name, DefaultColor: defaultColor}
	r.order = append(r.order, c)
	r.byName[name] = c
	return c
}

// Observe is called when a bone of the named category is drawn.
func (r *Registry) Observe(name string) *Category {
	c := r.Add(name, FallbackColor)
	c.ShouldDisplay = true
	return c
}

func (r *Registry) Get(name string) (*Category, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Categories returns the categories in registration order.
func (r *Registry) Categories() []*Category {
	out := make([]*Category, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int { return len(r.order) }

// Index is name's registration position, or -1 when it is unknown.
func (r *Registry) Index(name string) int {
	for i, c := range r.order {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Suggest returns the known category name closest to name, or "" when the
// registry is empty or nothing is reasonably close.
func (r *Registry) Suggest(name string) string {
	needle := strings.ToLower(strings.TrimSpace(name))
	best, bestDist := "", -1
	for _, c := range r.order {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(c.Name))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c.Name, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(needle)/3) {
		return ""
	}
	return best
}
