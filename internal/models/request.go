package models

import "sermon-art-backend/internal/prompt"

type MaterializeRequest struct {
	Title     string `json:"title" binding:"required" example:"Walking in Faith"`
	Topic     string `json:"topic" example:"Trusting God in uncertain seasons"`
	Reference string `json:"reference,omitempty" example:"Hebrews 11:1"`
}

// PromptRequest generates a prompt from a title and topic, or with
// mode "convert" turns an edited summary back into a full prompt.
type PromptRequest struct {
	Title       string `json:"title,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Summary     string `json:"summary,omitempty"`
	StylePreset string `json:"stylePreset,omitempty" example:"modern-minimal"`
	Mode        string `json:"mode,omitempty" example:"generate"`
}

type EditPromptRequest struct {
	PromptData prompt.PromptData `json:"promptData"`
	ElementID  string            `json:"elementId" binding:"required"`
	Value      string            `json:"value"`
}

type ImageRequest struct {
	Prompt      string `json:"prompt" binding:"required"`
	StylePreset string `json:"stylePreset,omitempty"`
}

type TypographyRequest struct {
	Headline    string `json:"headline" example:"Hope Rising"`
	SubHeadline string `json:"subHeadline,omitempty" example:"Romans 5:1-5"`
	Style       string `json:"style,omitempty" example:"bold serif"`
}

// SelectionRequest updates whichever fields are present.
type SelectionRequest struct {
	TypographyURL         *string `json:"typographyUrl,omitempty"`
	BackgroundDescription *string `json:"backgroundDescription,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
