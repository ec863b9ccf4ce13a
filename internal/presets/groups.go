package presets

const OtherGroup = "Other"

type groupDef struct {
	Name    string
	Members []string
}

// Definition order decides which group wins when a tag appears in more than
// one membership list.
var groupDefs = []groupDef{
	{Name: "Style", Members: []string{"modern", "minimalist", "vintage", "retro", "classic", "illustrated", "photographic", "typographic", "abstract"}},
	{Name: "Theme", Members: []string{"grace", "hope", "faith", "love", "easter", "christmas", "advent", "creation", "redemption", "worship"}},
	{Name: "Mood", Members: []string{"joyful", "reflective", "bold", "peaceful", "dramatic", "warm", "dark"}},
	{Name: "Visual", Members: []string{"light", "texture", "nature", "landscape", "geometric", "gradient", "collage", "cinematic"}},
}

type CategoryGroup struct {
	Name    string        `json:"name" yaml:"name"`
	Presets []StylePreset `json:"presets" yaml:"presets"`
}

// GroupName returns the group a tag belongs to.
func GroupName(tag string) string {
	for _, g := range groupDefs {
		for _, m := range g.Members {
			if m == tag {
				return g.Name
			}
		}
	}
	return OtherGroup
}

// GroupByCategory buckets presets by the groups their tags fall into. Groups
// keep definition order with Other last; empty groups are left out and a
// preset is listed at most once per group.
func GroupByCategory(presets []StylePreset) []CategoryGroup {
	names := make([]string, 0, len(groupDefs)+1)
	for _, g := range groupDefs {
		names = append(names, g.Name)
	}
	names = append(names, OtherGroup)

	buckets := make(map[string][]StylePreset, len(names))
	for _, p := range presets {
		placed := make(map[string]bool)
		for _, tag := range p.Categories {
			name := GroupName(tag)
			if placed[name] {
				continue
			}
			placed[name] = true
			buckets[name] = append(buckets[name], p)
		}
	}

	out := make([]CategoryGroup, 0, len(names))
	for _, name := range names {
		if len(buckets[name]) == 0 {
			continue
		}
		out = append(out, CategoryGroup{Name: name, Presets: buckets[name]})
	}
	return out
}
