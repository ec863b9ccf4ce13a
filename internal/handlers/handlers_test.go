package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sermon-art-backend/internal/credits"
	"sermon-art-backend/internal/handlers"
	"sermon-art-backend/internal/models"
	"sermon-art-backend/internal/presets"
	"sermon-art-backend/internal/prompt"
	"sermon-art-backend/internal/saltapi"
	"sermon-art-backend/internal/services"
	"sermon-art-backend/internal/workflow"
)

const jwtSecret = "handlers-test-secret-handlers-test-secret"

type memStore struct {
	balance int
}

func (m *memStore) GetOrCreateCredits(_ context.Context, userID uuid.UUID) (*credits.Balance, error) {
	return &credits.Balance{UserID: userID, CreditsRemaining: m.balance, NextResetAt: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)}, nil
}

type stubGenerator struct {
	typographyErr error
}

func (s *stubGenerator) GenerateTypography(context.Context, saltapi.TypographyRequest) ([]string, error) {
	if s.typographyErr != nil {
		return nil, s.typographyErr
	}
	return []string{"https://img/t1.png"}, nil
}

func (s *stubGenerator) SuggestBackgrounds(context.Context, saltapi.SuggestRequest) ([]string, error) {
	return []string{"sunrise"}, nil
}

func (s *stubGenerator) GenerateFinal(context.Context, saltapi.FinalRequest) (string, error) {
	return "https://img/poster.png", nil
}

func (s *stubGenerator) Animate(context.Context, string) (string, error) {
	return "https://vid/poster.mp4", nil
}

func (s *stubGenerator) FetchDataURL(context.Context, string) (string, error) {
	return "data:image/png;base64,AAAA", nil
}

type stubPrompts struct{}

func (stubPrompts) Generate(_ context.Context, title, topic, presetID string) (*services.PromptResult, error) {
	if title == "" {
		return nil, services.ErrInvalidInput
	}
	pd, err := prompt.NewPromptData([]prompt.Element{{Type: "subject", Value: "lighthouse"}}, "A {lighthouse}", "full")
	if err != nil {
		return nil, err
	}
	return &services.PromptResult{FullPrompt: "full", Summary: "A {lighthouse}", PromptData: pd}, nil
}

func (stubPrompts) Convert(_ context.Context, summary, presetID string) (string, error) {
	return "converted: " + summary, nil
}

type stubImages struct {
	err error
}

func (s stubImages) GenerateImage(_ context.Context, userID uuid.UUID, p, presetID string) (*services.ImageResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &services.ImageResult{URL: "https://img/gen.png", Balance: &credits.Balance{UserID: userID, CreditsRemaining: 4}}, nil
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("down") }

type testEnv struct {
	router *gin.Engine
	token  string
	user   uuid.UUID
}

func newEnv(t *testing.T, balance int, gen *stubGenerator, mutate func(*handlers.RouterOptions)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gate := credits.NewGate(&memStore{balance: balance}, nil)
	if gen == nil {
		gen = &stubGenerator{}
	}
	opts := handlers.RouterOptions{
		JWTSecret: jwtSecret,
		Catalog:   presets.Default(),
		Gate:      gate,
		Sessions: workflow.NewStore(workflow.StoreOptions{
			Generator:  gen,
			CreditsFor: func(id uuid.UUID) workflow.CreditChecker { return gate.ForUser(id) },
		}),
		Prompts: stubPrompts{},
		Images:  stubImages{},
	}
	if mutate != nil {
		mutate(&opts)
	}

	user := uuid.New()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": user.String()}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)

	return &testEnv{router: handlers.NewRouter(opts), token: token, user: user}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	env := newEnv(t, 1, nil, nil)
	env.token = ""
	w := env.do("GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")

	env = newEnv(t, 1, nil, func(o *handlers.RouterOptions) { o.DB = failingPinger{} })
	w = env.do("GET", "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decode[models.HealthResponse](t, w).Database)
}

func TestAPIRequiresAuth(t *testing.T) {
	env := newEnv(t, 1, nil, nil)
	env.token = ""
	assert.Equal(t, http.StatusUnauthorized, env.do("GET", "/api/v1/presets", nil).Code)
}

func TestPresets(t *testing.T) {
	env := newEnv(t, 1, nil, nil)

	w := env.do("GET", "/api/v1/presets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[models.PresetListResponse](t, w)
	assert.Len(t, all.Presets, len(presets.Default().List()))
	assert.Contains(t, all.Categories, "modern")

	w = env.do("GET", "/api/v1/presets?category=advent", nil)
	filtered := decode[models.PresetListResponse](t, w)
	require.Len(t, filtered.Presets, 1)
	assert.Equal(t, "advent-glow", filtered.Presets[0].ID)

	w = env.do("GET", "/api/v1/presets/groups", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[models.PresetGroupsResponse](t, w).Groups)

	assert.Equal(t, http.StatusOK, env.do("GET", "/api/v1/presets/vintage-paper", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do("GET", "/api/v1/presets/nope", nil).Code)
}

func TestMaterialize(t *testing.T) {
	env := newEnv(t, 1, nil, nil)

	w := env.do("POST", "/api/v1/presets/scripture-typographic/materialize", models.MaterializeRequest{
		Title: "Walking in Faith", Topic: "trust", Reference: "Hebrews 11:1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.MaterializeResponse](t, w)
	assert.Equal(t, "scripture-typographic", resp.PresetID)
	assert.Contains(t, resp.Prompt, `"headline":"Walking in Faith"`)
	assert.Contains(t, resp.Prompt, `"footer":"Hebrews 11:1"`)
	assert.NotContains(t, resp.Prompt, "{sermon_")

	assert.Equal(t, http.StatusBadRequest, env.do("POST", "/api/v1/presets/modern-minimal/materialize", map[string]string{}).Code)
	assert.Equal(t, http.StatusNotFound, env.do("POST", "/api/v1/presets/nope/materialize", models.MaterializeRequest{Title: "x"}).Code)
}

func TestMaterialize_MalformedTemplate(t *testing.T) {
	catalog, err := presets.NewCatalog([]presets.StylePreset{
		{ID: "broken", Title: "Broken", PromptModifiers: `{"subject":`},
	})
	require.NoError(t, err)
	env := newEnv(t, 1, nil, func(o *handlers.RouterOptions) { o.Catalog = catalog })

	w := env.do("POST", "/api/v1/presets/broken/materialize", models.MaterializeRequest{Title: "Hope"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[models.ErrorResponse](t, w)
	assert.Equal(t, "template malformed", resp.Error)
	assert.Contains(t, resp.Message, "preset broken")
}

func TestPrompts(t *testing.T) {
	env := newEnv(t, 1, nil, nil)

	w := env.do("POST", "/api/v1/prompts", models.PromptRequest{Title: "Light", Topic: "hope"})
	require.Equal(t, http.StatusOK, w.Code)
	gen := decode[models.PromptResponse](t, w)
	assert.Equal(t, "full", gen.FullPrompt)
	assert.Equal(t, "A {lighthouse}", gen.Summary)
	require.NotNil(t, gen.PromptData)
	assert.Equal(t, "A {id:subject}", gen.PromptData.Summary)

	w = env.do("POST", "/api/v1/prompts", models.PromptRequest{Summary: "A cross", Mode: "convert"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "converted: A cross", decode[models.PromptResponse](t, w).FullPrompt)

	assert.Equal(t, http.StatusBadRequest, env.do("POST", "/api/v1/prompts", models.PromptRequest{Mode: "other"}).Code)
	assert.Equal(t, http.StatusBadRequest, env.do("POST", "/api/v1/prompts", models.PromptRequest{}).Code)
}

func TestEditPrompt(t *testing.T) {
	env := newEnv(t, 1, nil, nil)
	pd, err := prompt.NewPromptData([]prompt.Element{{Type: "subject", Value: "lighthouse"}}, "A {lighthouse} by a {lighthouse}", "raw")
	require.NoError(t, err)

	w := env.do("POST", "/api/v1/prompts/edit", models.EditPromptRequest{PromptData: *pd, ElementID: "subject", Value: "cross"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.EditPromptResponse](t, w)
	assert.Equal(t, "A {cross} by a {cross}", resp.Summary)
	assert.Equal(t, "cross", resp.PromptData.Elements[0].Value)

	w = env.do("POST", "/api/v1/prompts/edit", models.EditPromptRequest{PromptData: *pd, ElementID: "missing", Value: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditPrompt_DisplayFormSummary(t *testing.T) {
	env := newEnv(t, 1, nil, nil)
	elements := []prompt.Element{{ID: "subject", Type: "subject", Value: "lighthouse"}, {ID: "setting", Type: "setting", Value: "dawn"}}

	w := env.do("POST", "/api/v1/prompts/edit", models.EditPromptRequest{
		PromptData: prompt.PromptData{Elements: elements, Summary: "A {lighthouse} at {dawn}"},
		ElementID:  "subject",
		Value:      "cathedral",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.EditPromptResponse](t, w)
	assert.Equal(t, "A {cathedral} at {dawn}", resp.Summary)
	assert.Equal(t, "A {id:subject} at {id:setting}", resp.PromptData.Summary)

	w = env.do("POST", "/api/v1/prompts/edit", models.EditPromptRequest{
		PromptData: prompt.PromptData{Elements: elements, Summary: "A {lighthouse} at {dawn} with {nothing}"},
		ElementID:  "subject",
		Value:      "cathedral",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[models.ErrorResponse](t, w).Message, "nothing")
}

func TestImages(t *testing.T) {
	env := newEnv(t, 1, nil, nil)
	w := env.do("POST", "/api/v1/images", models.ImageRequest{Prompt: "a cross"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.ImageResponse](t, w)
	assert.Equal(t, "https://img/gen.png", resp.URL)
	assert.Equal(t, 4, resp.CreditsRemaining)

	env = newEnv(t, 0, nil, func(o *handlers.RouterOptions) { o.Images = stubImages{err: credits.ErrNoCredits} })
	w = env.do("POST", "/api/v1/images", models.ImageRequest{Prompt: "a cross"})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "no credits remaining", decode[models.ErrorResponse](t, w).Error)

	env = newEnv(t, 1, nil, func(o *handlers.RouterOptions) { o.Images = nil })
	assert.Equal(t, http.StatusServiceUnavailable, env.do("POST", "/api/v1/images", models.ImageRequest{Prompt: "x"}).Code)
}

func TestCredits(t *testing.T) {
	env := newEnv(t, 7, nil, nil)

	w := env.do("GET", "/api/v1/credits", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, decode[models.CreditsResponse](t, w).CreditsRemaining)

	w = env.do("POST", "/api/v1/credits/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, decode[models.CreditsResponse](t, w).CreditsRemaining)
}

func TestSession_NoCreditsStaysIdle(t *testing.T) {
	env := newEnv(t, 0, nil, nil)

	w := env.do("POST", "/api/v1/session/typography", models.TypographyRequest{Headline: "Hope"})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "no credits remaining", decode[models.ErrorResponse](t, w).Error)

	w = env.do("GET", "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, workflow.StatusIdle, decode[workflow.Snapshot](t, w).Status)
}

func TestSession_FullFlow(t *testing.T) {
	env := newEnv(t, 5, nil, nil)

	w := env.do("POST", "/api/v1/session/poster", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do("POST", "/api/v1/session/typography", models.TypographyRequest{Headline: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "headline is required", decode[models.ErrorResponse](t, w).Message)

	w = env.do("POST", "/api/v1/session/typography", models.TypographyRequest{Headline: "Hope"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap := decode[workflow.Snapshot](t, w)
	assert.Equal(t, workflow.StatusTypographyReady, snap.Status)
	assert.Equal(t, []string{"https://img/t1.png"}, snap.TypographyOptions)

	url, desc := "https://img/t1.png", "sunrise over hills"
	w = env.do("POST", "/api/v1/session/selection", models.SelectionRequest{TypographyURL: &url, BackgroundDescription: &desc})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do("POST", "/api/v1/session/poster", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://img/poster.png", decode[workflow.Snapshot](t, w).FinalPosterURL)

	w = env.do("POST", "/api/v1/session/animate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://vid/poster.mp4", decode[workflow.Snapshot](t, w).AnimatedVideoURL)

	w = env.do("DELETE", "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, workflow.StatusIdle, decode[workflow.Snapshot](t, w).Status)
}

func TestSession_RemoteErrorBanner(t *testing.T) {
	gen := &stubGenerator{typographyErr: &saltapi.APIError{StatusCode: 500, Message: "rate limited"}}
	env := newEnv(t, 5, gen, nil)

	w := env.do("POST", "/api/v1/session/typography", models.TypographyRequest{Headline: "Hope"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "rate limited", decode[models.ErrorResponse](t, w).Message)

	w = env.do("GET", "/api/v1/session", nil)
	snap := decode[workflow.Snapshot](t, w)
	assert.Equal(t, workflow.StatusError, snap.Status)
	assert.Equal(t, "rate limited", snap.Error)

	gen.typographyErr = nil
	w = env.do("POST", "/api/v1/session/retry", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, workflow.StatusTypographyReady, decode[workflow.Snapshot](t, w).Status)
}

func TestSignOutDropsBalanceAndSession(t *testing.T) {
	env := newEnv(t, 5, nil, nil)

	w := env.do("POST", "/api/v1/session/typography", models.TypographyRequest{Headline: "Hope"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do("POST", "/api/v1/signout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do("GET", "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, workflow.StatusIdle, decode[workflow.Snapshot](t, w).Status)

	w = env.do("GET", "/api/v1/credits", nil)
	assert.Equal(t, 5, decode[models.CreditsResponse](t, w).CreditsRemaining)
}

func TestAssetsUnavailable(t *testing.T) {
	env := newEnv(t, 1, nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, env.do("GET", "/api/v1/assets", nil).Code)
}
