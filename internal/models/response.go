package models

import (
	"time"

	"sermon-art-backend/internal/presets"
	"sermon-art-backend/internal/prompt"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

type PresetListResponse struct {
	Presets    []presets.StylePreset `json:"presets"`
	Categories []string              `json:"categories"`
}

type PresetGroupsResponse struct {
	Groups []presets.CategoryGroup `json:"groups"`
}

type MaterializeResponse struct {
	PresetID     string `json:"presetId"`
	Prompt       string `json:"prompt"`
	ReferenceURL string `json:"referenceUrl,omitempty"`
}

type PromptResponse struct {
	FullPrompt string             `json:"fullPrompt"`
	Summary    string             `json:"summary,omitempty"`
	PromptData *prompt.PromptData `json:"promptData,omitempty"`
}

type EditPromptResponse struct {
	Summary    string            `json:"summary"`
	PromptData prompt.PromptData `json:"promptData"`
}

type ImageResponse struct {
	URL              string `json:"url"`
	CreditsRemaining int    `json:"creditsRemaining"`
}

type CreditsResponse struct {
	CreditsRemaining int       `json:"creditsRemaining"`
	NextResetAt      time.Time `json:"nextResetAt"`
}

type AssetListResponse struct {
	Assets []GeneratedAsset `json:"assets"`
}
