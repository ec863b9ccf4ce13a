package workflow

import "time"

type Status string

const (
	StatusIdle                 Status = "idle"
	StatusGeneratingTypography Status = "generating-typography"
	StatusTypographyReady      Status = "typography-ready"
	StatusGeneratingPoster     Status = "generating-poster"
	StatusComplete             Status = "complete"
	StatusAnimating            Status = "animating"
	StatusError                Status = "error"
)

type Stage string

const (
	StageTypography Stage = "typography"
	StagePoster     Stage = "poster"
	StageAnimation  Stage = "animation"
)

// State is one variant of the generation session. Each variant carries only
// the data that is valid while the session is in it.
type State interface {
	Status() Status
}

type TypographyInput struct {
	Headline    string `json:"headline"`
	SubHeadline string `json:"subHeadline"`
	Style       string `json:"style"`
}

type Idle struct{}

type GeneratingTypography struct {
	Input     TypographyInput
	StartedAt time.Time
}

type TypographyReady struct {
	Input                 TypographyInput
	Options               []string
	Suggestions           []string
	Selected              string
	BackgroundDescription string
}

type GeneratingPoster struct {
	Typography TypographyReady
	StartedAt  time.Time
}

type Complete struct {
	Typography TypographyReady
	PosterURL  string
	VideoURL   string
}

type Animating struct {
	Poster    Complete
	StartedAt time.Time
}

// Failed keeps the in-flight state that failed so the stage can be retried
// with the same inputs.
type Failed struct {
	Stage   Stage
	Message string
	Prior   State
}

func (Idle) Status() Status                 { return StatusIdle }
func (GeneratingTypography) Status() Status { return StatusGeneratingTypography }
func (TypographyReady) Status() Status      { return StatusTypographyReady }
func (GeneratingPoster) Status() Status     { return StatusGeneratingPoster }
func (Complete) Status() Status             { return StatusComplete }
func (Animating) Status() Status            { return StatusAnimating }
func (Failed) Status() Status               { return StatusError }

func inFlight(s State) bool {
	switch s.(type) {
	case GeneratingTypography, GeneratingPoster, Animating:
		return true
	}
	return false
}

func startedAt(s State) (time.Time, bool) {
	switch v := s.(type) {
	case GeneratingTypography:
		return v.StartedAt, true
	case GeneratingPoster:
		return v.StartedAt, true
	case Animating:
		return v.StartedAt, true
	}
	return time.Time{}, false
}

// Snapshot is the flattened view of a session sent to clients.
type Snapshot struct {
	Status                Status     `json:"status"`
	FailedStage           Stage      `json:"failedStage,omitempty"`
	Error                 string     `json:"error,omitempty"`
	Headline              string     `json:"headline,omitempty"`
	SubHeadline           string     `json:"subHeadline,omitempty"`
	TypographyStyle       string     `json:"typographyStyle,omitempty"`
	TypographyOptions     []string   `json:"typographyOptions,omitempty"`
	Suggestions           []string   `json:"suggestions,omitempty"`
	SelectedTypography    string     `json:"selectedTypography,omitempty"`
	BackgroundDescription string     `json:"backgroundDescription,omitempty"`
	FinalPosterURL        string     `json:"finalPosterUrl,omitempty"`
	AnimatedVideoURL      string     `json:"animatedVideoUrl,omitempty"`
	StartedAt             *time.Time `json:"startedAt,omitempty"`
	ElapsedSeconds        float64    `json:"elapsedSeconds,omitempty"`
}

func snapshotOf(s State, now time.Time) Snapshot {
	snap := Snapshot{Status: s.Status()}
	fill(&snap, s)

	if f, ok := s.(Failed); ok {
		snap.FailedStage = f.Stage
		snap.Error = f.Message
	}
	if t, ok := startedAt(s); ok {
		snap.StartedAt = &t
		snap.ElapsedSeconds = now.Sub(t).Seconds()
	}
	return snap
}

func fill(snap *Snapshot, s State) {
	switch v := s.(type) {
	case GeneratingTypography:
		fillInput(snap, v.Input)
	case TypographyReady:
		fillInput(snap, v.Input)
		snap.TypographyOptions = v.Options
		snap.Suggestions = v.Suggestions
		snap.SelectedTypography = v.Selected
		snap.BackgroundDescription = v.BackgroundDescription
	case GeneratingPoster:
		fill(snap, v.Typography)
	case Complete:
		fill(snap, v.Typography)
		snap.FinalPosterURL = v.PosterURL
		snap.AnimatedVideoURL = v.VideoURL
	case Animating:
		fill(snap, v.Poster)
	case Failed:
		if v.Prior != nil {
			fill(snap, v.Prior)
		}
	}
}

func fillInput(snap *Snapshot, in TypographyInput) {
	snap.Headline = in.Headline
	snap.SubHeadline = in.SubHeadline
	snap.TypographyStyle = in.Style
}
