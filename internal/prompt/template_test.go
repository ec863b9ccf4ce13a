package prompt_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sermon-art-backend/internal/presets"
	"sermon-art-backend/internal/prompt"
)

func TestMaterializeTemplate_Scenario(t *testing.T) {
	out, err := prompt.MaterializeTemplate(
		`{"title":"{sermon_title}","note":"about {sermon_topic}"}`,
		prompt.SermonBindings(prompt.Sermon{Title: "Hope", Topic: "Romans 5"}),
	)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{"title": "Hope", "note": "about Romans 5"}, got)
}

func TestMaterialize_GlobalReplacement(t *testing.T) {
	out := prompt.Materialize("{sermon_title} about {sermon_title}", prompt.Bindings{"sermon_title": "Grace"})
	assert.Equal(t, "Grace about Grace", out)
}

func TestMaterialize_PreservesStructureAndOrder(t *testing.T) {
	src := `{"z":"{sermon_title}","a":[1,"{sermon_topic}",{"m":null,"b":true,"k":2.50}],"n":{"deep":["x","{sermon_title}!"]}}`
	tree, err := prompt.Parse([]byte(src))
	require.NoError(t, err)

	out := prompt.Materialize(tree, prompt.Bindings{"sermon_title": "Hope", "sermon_topic": "Joy"})
	obj, ok := out.(*prompt.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "n"}, obj.Keys())

	encoded, err := prompt.Encode(out)
	require.NoError(t, err)
	assert.Equal(t,
		`{"z":"Hope","a":[1,"Joy",{"m":null,"b":true,"k":2.50}],"n":{"deep":["x","Hope!"]}}`,
		string(encoded))

	// the input tree is untouched
	first, _ := tree.(*prompt.Object).Get("z")
	assert.Equal(t, "{sermon_title}", first)
}

func TestMaterialize_Idempotent(t *testing.T) {
	b := prompt.SermonBindings(prompt.Sermon{Title: "Living Water", Topic: "John 4"})
	tree, err := prompt.Parse([]byte(presets.Default().List()[0].PromptModifiers))
	require.NoError(t, err)

	once, err := prompt.Encode(prompt.Materialize(tree, b))
	require.NoError(t, err)
	twice, err := prompt.Encode(prompt.Materialize(prompt.Materialize(tree, b), b))
	require.NoError(t, err)

	assert.Equal(t, string(once), string(twice))
	assert.NotContains(t, string(once), "{sermon_title}")
	assert.NotContains(t, string(once), "{sermon_topic}")
}

func TestMaterialize_BoundValuesAreNotRescanned(t *testing.T) {
	out := prompt.Materialize("{sermon_title} / {sermon_topic}", prompt.Bindings{
		"sermon_title": "{sermon_topic}",
		"sermon_topic": "Faith",
	})
	assert.Equal(t, "{sermon_topic} / Faith", out)
}

func TestMaterialize_UnboundTokensLeftAlone(t *testing.T) {
	out := prompt.Materialize("{sermon_reference} {other}", prompt.Bindings{"sermon_title": "x"})
	assert.Equal(t, "{sermon_reference} {other}", out)
}

func TestMaterialize_NonStringLeaves(t *testing.T) {
	assert.Equal(t, json.Number("3"), prompt.Materialize(json.Number("3"), prompt.Bindings{"a": "b"}))
	assert.Equal(t, true, prompt.Materialize(true, prompt.Bindings{"a": "b"}))
	assert.Nil(t, prompt.Materialize(nil, prompt.Bindings{"a": "b"}))
}

func TestEncode_DoesNotEscapeHTML(t *testing.T) {
	out, err := prompt.MaterializeTemplate(`{"t":"{sermon_title}"}`, prompt.Bindings{"sermon_title": "Faith & <Works>"})
	require.NoError(t, err)
	assert.Equal(t, `{"t":"Faith & <Works>"}`, out)
}

func TestParse_Malformed(t *testing.T) {
	for _, src := range []string{``, `{"a":`, `{"a":1}}`, `{a:1}`, `["x",]`, `{} {}`} {
		_, err := prompt.Parse([]byte(src))
		assert.True(t, errors.Is(err, prompt.ErrTemplateMalformed), "input %q", src)
	}
}

func TestMaterializePreset_MalformedSurfacesTemplateError(t *testing.T) {
	_, err := prompt.MaterializePreset(presets.StylePreset{ID: "broken", PromptModifiers: `{"title": "{sermon_title}"`}, prompt.Sermon{Title: "x"})
	require.Error(t, err)

	var tmplErr *prompt.TemplateError
	require.True(t, errors.As(err, &tmplErr))
	assert.Equal(t, "broken", tmplErr.PresetID)
	assert.True(t, errors.Is(err, prompt.ErrTemplateMalformed))
}

func TestMaterializePreset_RetroRevivalWords(t *testing.T) {
	p, ok := presets.Default().Find("retro-revival")
	require.True(t, ok)

	out, err := prompt.MaterializePreset(p, prompt.Sermon{Title: "The Lord Is My Shepherd", Topic: "Psalm 23"})
	require.NoError(t, err)

	var got struct {
		Layout struct {
			Stack []string `json:"stack"`
		} `json:"layout"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"The", "Lord", "Is My Shepherd"}, got.Layout.Stack)
}

func TestDefaultCatalog_AllPresetsMaterialize(t *testing.T) {
	for _, p := range presets.Default().List() {
		out, err := prompt.MaterializePreset(p, prompt.Sermon{Title: "Hope", Topic: "Romans 5", Reference: "Romans 5:1-5"})
		require.NoError(t, err, p.ID)
		assert.NotContains(t, out, "{sermon_", p.ID)
	}
}
