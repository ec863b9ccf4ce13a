package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrUnresolvedReference = errors.New("summary references an unknown element")
	ErrElementNotFound     = errors.New("prompt element not found")
)

var (
	displayRefPattern = regexp.MustCompile(`\{([^{}]+)\}`)
	idRefPattern      = regexp.MustCompile(`\{id:([^{}]+)\}`)
)

// Element is one editable slot of a generated prompt.
type Element struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Value       string   `json:"value"`
	Suggestions []string `json:"suggestions"`
}

// PromptData is the editable decomposition of a generated prompt. Summary
// refers to elements as {id:<element id>} so edits never have to rewrite it.
type PromptData struct {
	Elements  []Element `json:"elements"`
	Summary   string    `json:"summary"`
	RawPrompt string    `json:"rawPrompt"`
}

type Segment struct {
	Text      string `json:"text"`
	ElementID string `json:"elementId,omitempty"`
}

// NewPromptData builds PromptData from a summary that brackets element values,
// e.g. "A {lighthouse} at {dawn}". When two elements share a value the first
// one is referenced.
func NewPromptData(elements []Element, displaySummary, rawPrompt string) (*PromptData, error) {
	pd := &PromptData{
		Elements:  assignIDs(elements),
		Summary:   displaySummary,
		RawPrompt: rawPrompt,
	}
	if err := pd.Normalize(); err != nil {
		return nil, err
	}
	return pd, nil
}

// Normalize rewrites every {value} span in the summary to the {id:...}
// reference of the first element holding that value. Spans that are already
// resolvable references are left alone. The summary is unchanged on error.
func (pd *PromptData) Normalize() error {
	var unresolved []string
	summary := displayRefPattern.ReplaceAllStringFunc(pd.Summary, func(m string) string {
		inner := m[1 : len(m)-1]
		if id, ok := strings.CutPrefix(inner, "id:"); ok && pd.index(id) >= 0 {
			return m
		}
		for _, e := range pd.Elements {
			if e.Value == inner {
				return "{id:" + e.ID + "}"
			}
		}
		unresolved = append(unresolved, inner)
		return m
	})
	if len(unresolved) > 0 {
		return fmt.Errorf("%w: %s", ErrUnresolvedReference, strings.Join(unresolved, ", "))
	}
	pd.Summary = summary
	return nil
}

func assignIDs(elements []Element) []Element {
	out := make([]Element, len(elements))
	used := make(map[string]bool, len(elements))
	for i, e := range elements {
		e.Suggestions = append([]string(nil), e.Suggestions...)
		base := slug(e.ID)
		if base == "" {
			base = slug(e.Type)
		}
		if base == "" {
			base = "element"
		}
		id := base
		for n := 2; used[id]; n++ {
			id = base + "-" + strconv.Itoa(n)
		}
		used[id] = true
		e.ID = id
		out[i] = e
	}
	return out
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}

func (pd *PromptData) index(id string) int {
	for i, e := range pd.Elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Segments splits the summary into literal text and element references,
// resolving each reference to the element's current value. Any braced span
// that is not a known {id:...} reference is an error.
func (pd *PromptData) Segments() ([]Segment, error) {
	var out []Segment
	last := 0
	for _, loc := range displayRefPattern.FindAllStringSubmatchIndex(pd.Summary, -1) {
		if loc[0] > last {
			out = append(out, Segment{Text: pd.Summary[last:loc[0]]})
		}
		inner := pd.Summary[loc[2]:loc[3]]
		id, ok := strings.CutPrefix(inner, "id:")
		i := -1
		if ok {
			i = pd.index(id)
		}
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedReference, inner)
		}
		out = append(out, Segment{Text: pd.Elements[i].Value, ElementID: id})
		last = loc[1]
	}
	if last < len(pd.Summary) {
		out = append(out, Segment{Text: pd.Summary[last:]})
	}
	return out, nil
}

// DisplaySummary renders the summary with each reference shown as {value}.
func (pd *PromptData) DisplaySummary() string {
	return idRefPattern.ReplaceAllStringFunc(pd.Summary, func(m string) string {
		id := m[len("{id:") : len(m)-1]
		if i := pd.index(id); i >= 0 {
			return "{" + pd.Elements[i].Value + "}"
		}
		return m
	})
}

func (pd *PromptData) Validate() error {
	_, err := pd.Segments()
	return err
}

func (pd *PromptData) EditElement(id, value string) error {
	i := pd.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	pd.Elements[i].Value = value
	return nil
}

func (pd *PromptData) EditElementAt(i int, value string) error {
	if i < 0 || i >= len(pd.Elements) {
		return fmt.Errorf("%w: index %d", ErrElementNotFound, i)
	}
	pd.Elements[i].Value = value
	return nil
}
