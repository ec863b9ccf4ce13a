package presets

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

//go:embed presets.json
var presetsJSON []byte

var ErrPresetNotFound = errors.New("style preset not found")

// StylePreset is one named visual template. PromptModifiers holds a JSON
// document with {sermon_*} placeholder tokens.
type StylePreset struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description" yaml:"description"`
	Categories      []string `json:"categories" yaml:"categories"`
	PromptModifiers string   `json:"promptModifiers" yaml:"promptModifiers"`
	PreviewURL      string   `json:"previewUrl" yaml:"previewUrl"`
	ReferenceURL    string   `json:"referenceUrl" yaml:"referenceUrl"`
}

func (p StylePreset) HasCategory(tag string) bool {
	for _, c := range p.Categories {
		if c == tag {
			return true
		}
	}
	return false
}

func (p StylePreset) clone() StylePreset {
	p.Categories = append([]string(nil), p.Categories...)
	return p
}

// Catalog is an immutable preset table.
type Catalog struct {
	presets []StylePreset
	byID    map[string]int
}

func NewCatalog(presets []StylePreset) (*Catalog, error) {
	c := &Catalog{
		presets: make([]StylePreset, 0, len(presets)),
		byID:    make(map[string]int, len(presets)),
	}
	for _, p := range presets {
		if p.ID == "" {
			return nil, fmt.Errorf("preset %q has no id", p.Title)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate preset id %q", p.ID)
		}
		c.byID[p.ID] = len(c.presets)
		c.presets = append(c.presets, p.clone())
	}
	return c, nil
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	var presets []StylePreset
	if err := json.Unmarshal(presetsJSON, &presets); err != nil {
		return nil, fmt.Errorf("failed to decode embedded presets: %w", err)
	}
	return NewCatalog(presets)
})

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) List() []StylePreset {
	out := make([]StylePreset, len(c.presets))
	for i, p := range c.presets {
		out[i] = p.clone()
	}
	return out
}

func (c *Catalog) Find(id string) (StylePreset, bool) {
	i, ok := c.byID[id]
	if !ok {
		return StylePreset{}, false
	}
	return c.presets[i].clone(), true
}

// Get is Find with an error for callers that propagate failures.
func (c *Catalog) Get(id string) (StylePreset, error) {
	p, ok := c.Find(id)
	if !ok {
		return StylePreset{}, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
	}
	return p, nil
}

// Categories returns every distinct tag in the catalog, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	for _, p := range c.presets {
		for _, tag := range p.Categories {
			seen[tag] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func Filter(presets []StylePreset, tag string) []StylePreset {
	if tag == "" {
		return presets
	}
	out := make([]StylePreset, 0, len(presets))
	for _, p := range presets {
		if p.HasCategory(tag) {
			out = append(out, p)
		}
	}
	return out
}
