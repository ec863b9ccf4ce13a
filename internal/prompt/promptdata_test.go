package prompt_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sermon-art-backend/internal/prompt"
)

func samplePromptData(t *testing.T) *prompt.PromptData {
	t.Helper()
	pd, err := prompt.NewPromptData([]prompt.Element{
		{Type: "subject", Value: "lighthouse", Suggestions: []string{"cross", "open door"}},
		{Type: "setting", Value: "stormy sea"},
		{Type: "mood", Value: "hopeful"},
	}, "A {lighthouse} over a {stormy sea}, {hopeful} and bright. The {lighthouse} glows.", "raw prompt")
	require.NoError(t, err)
	return pd
}

func TestNewPromptData_ConvertsToIDReferences(t *testing.T) {
	pd := samplePromptData(t)

	assert.Equal(t, "A {id:subject} over a {id:setting}, {id:mood} and bright. The {id:subject} glows.", pd.Summary)
	assert.Equal(t, "A {lighthouse} over a {stormy sea}, {hopeful} and bright. The {lighthouse} glows.", pd.DisplaySummary())
	assert.NoError(t, pd.Validate())
}

func TestNewPromptData_UnresolvedSpan(t *testing.T) {
	_, err := prompt.NewPromptData([]prompt.Element{{Type: "subject", Value: "dove"}}, "A {dove} and {olive branch}", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, prompt.ErrUnresolvedReference))
	assert.Contains(t, err.Error(), "olive branch")
}

func TestNewPromptData_DuplicateTypesGetDistinctIDs(t *testing.T) {
	pd, err := prompt.NewPromptData([]prompt.Element{
		{Type: "Color", Value: "gold"},
		{Type: "Color", Value: "blue"},
		{Value: "x"},
	}, "{gold} and {blue}", "")
	require.NoError(t, err)

	assert.Equal(t, "color", pd.Elements[0].ID)
	assert.Equal(t, "color-2", pd.Elements[1].ID)
	assert.Equal(t, "element", pd.Elements[2].ID)
	assert.Equal(t, "{id:color} and {id:color-2}", pd.Summary)
}

func TestEditElement_RewritesEverySpan(t *testing.T) {
	pd := samplePromptData(t)
	old := pd.Elements[0].Value

	require.NoError(t, pd.EditElement("subject", "cross"))

	assert.Equal(t, "cross", pd.Elements[0].Value)
	display := pd.DisplaySummary()
	assert.NotContains(t, display, "{"+old+"}")
	assert.Equal(t, "A {cross} over a {stormy sea}, {hopeful} and bright. The {cross} glows.", display)
}

func TestEditElement_CollidingValuesStayDistinct(t *testing.T) {
	pd := samplePromptData(t)

	require.NoError(t, pd.EditElement("mood", "stormy sea"))
	require.NoError(t, pd.EditElement("setting", "calm bay"))

	assert.Equal(t, "A {lighthouse} over a {calm bay}, {stormy sea} and bright. The {lighthouse} glows.", pd.DisplaySummary())
}

func TestEditElement_Unknown(t *testing.T) {
	pd := samplePromptData(t)
	assert.True(t, errors.Is(pd.EditElement("nope", "x"), prompt.ErrElementNotFound))
	assert.True(t, errors.Is(pd.EditElementAt(7, "x"), prompt.ErrElementNotFound))
	require.NoError(t, pd.EditElementAt(1, "valley"))
	assert.Equal(t, "valley", pd.Elements[1].Value)
}

func TestSegments(t *testing.T) {
	pd := samplePromptData(t)

	segs, err := pd.Segments()
	require.NoError(t, err)
	require.Len(t, segs, 9)
	assert.Equal(t, prompt.Segment{Text: "A "}, segs[0])
	assert.Equal(t, prompt.Segment{Text: "lighthouse", ElementID: "subject"}, segs[1])
	assert.Equal(t, prompt.Segment{Text: " glows."}, segs[8])

	pd.Summary += " {id:ghost}"
	_, err = pd.Segments()
	assert.True(t, errors.Is(err, prompt.ErrUnresolvedReference))
}

func TestValidate_RejectsDisplayAndUnknownSpans(t *testing.T) {
	elements := []prompt.Element{{ID: "subject", Value: "lighthouse"}, {ID: "setting", Value: "dawn"}}

	display := &prompt.PromptData{Elements: elements, Summary: "A {lighthouse} at {dawn}"}
	assert.ErrorIs(t, display.Validate(), prompt.ErrUnresolvedReference)

	unknown := &prompt.PromptData{Elements: elements, Summary: "A {id:subject} at {id:setting} with {nothing}"}
	err := unknown.Validate()
	assert.ErrorIs(t, err, prompt.ErrUnresolvedReference)
	assert.Contains(t, err.Error(), "nothing")
}

func TestNormalize_DisplayFormSummary(t *testing.T) {
	pd := &prompt.PromptData{
		Elements: []prompt.Element{{ID: "subject", Value: "lighthouse"}, {ID: "setting", Value: "dawn"}},
		Summary:  "A {lighthouse} at {id:setting}",
	}
	require.NoError(t, pd.Normalize())
	assert.Equal(t, "A {id:subject} at {id:setting}", pd.Summary)
	require.NoError(t, pd.Validate())

	require.NoError(t, pd.EditElement("subject", "cathedral"))
	assert.Equal(t, "A {cathedral} at {dawn}", pd.DisplaySummary())
}

func TestNormalize_UnknownSpanLeavesSummary(t *testing.T) {
	pd := &prompt.PromptData{
		Elements: []prompt.Element{{ID: "subject", Value: "lighthouse"}},
		Summary:  "A {lighthouse} with {nothing}",
	}
	err := pd.Normalize()
	assert.ErrorIs(t, err, prompt.ErrUnresolvedReference)
	assert.Equal(t, "A {lighthouse} with {nothing}", pd.Summary)
}
