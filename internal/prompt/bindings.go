package prompt

import (
	"sort"
	"strings"
)

const (
	TokenSermonTitle     = "sermon_title"
	TokenSermonTopic     = "sermon_topic"
	TokenSermonReference = "sermon_reference"
	TokenTitleWord1      = "sermon_title_word1"
	TokenTitleWord2      = "sermon_title_word2"
	TokenTitleWord3      = "sermon_title_word3"
)

// Bindings maps token names (without braces) to replacement text.
type Bindings map[string]string

func (b Bindings) replacer() *strings.Replacer {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", b[k])
	}
	return strings.NewReplacer(pairs...)
}

type Sermon struct {
	Title     string `json:"title"`
	Topic     string `json:"topic"`
	Reference string `json:"reference,omitempty"`
}

// SermonBindings binds the sermon tokens. The title is split on whitespace:
// word1 and word2 take the first two words and word3 takes the rest, with
// missing words bound to "". The reference token is only bound when set.
func SermonBindings(s Sermon) Bindings {
	b := Bindings{
		TokenSermonTitle: s.Title,
		TokenSermonTopic: s.Topic,
	}

	words := strings.Fields(s.Title)
	word := func(i int) string {
		if i < len(words) {
			return words[i]
		}
		return ""
	}
	b[TokenTitleWord1] = word(0)
	b[TokenTitleWord2] = word(1)
	if len(words) > 2 {
		b[TokenTitleWord3] = strings.Join(words[2:], " ")
	} else {
		b[TokenTitleWord3] = ""
	}

	if s.Reference != "" {
		b[TokenSermonReference] = s.Reference
	}
	return b
}
