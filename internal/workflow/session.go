package workflow

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"sermon-art-backend/internal/credits"
	"sermon-art-backend/internal/logging"
	"sermon-art-backend/internal/saltapi"
)

const (
	msgTypographyFailed = "Failed to generate typography. Please try again."
	msgPosterFailed     = "Failed to generate poster. Please try again."
	msgAnimationFailed  = "Failed to animate poster. Please try again."
)

var fallbackSuggestions = []string{
	"Soft morning light breaking over rolling hills",
	"Abstract watercolor texture in warm earth tones",
	"Starry night sky with a subtle blue gradient",
	"Rustic wooden cross against a golden sunset",
	"Calm ocean waves under an overcast sky",
}

// FallbackSuggestions returns the static list used when the suggestion
// call fails or comes back empty.
func FallbackSuggestions() []string {
	return slices.Clone(fallbackSuggestions)
}

// Generator is the remote generation API.
type Generator interface {
	GenerateTypography(ctx context.Context, in saltapi.TypographyRequest) ([]string, error)
	SuggestBackgrounds(ctx context.Context, in saltapi.SuggestRequest) ([]string, error)
	GenerateFinal(ctx context.Context, in saltapi.FinalRequest) (string, error)
	Animate(ctx context.Context, imageBase64 string) (string, error)
	FetchDataURL(ctx context.Context, fileURL string) (string, error)
}

type CreditChecker interface {
	CanStartStage() bool
}

type ArtifactKind string

const (
	ArtifactPoster ArtifactKind = "poster"
	ArtifactVideo  ArtifactKind = "video"
)

type Artifact struct {
	UserID uuid.UUID
	Kind   ArtifactKind
	URL    string
	Prompt string
	Topic  string
}

// ArtifactSaver persists finished posters and videos.
type ArtifactSaver interface {
	SaveArtifact(ctx context.Context, a Artifact) error
}

type Options struct {
	UserID    uuid.UUID
	Generator Generator
	Credits   CreditChecker
	Saver     ArtifactSaver
	Logger    *slog.Logger
	Now       func() time.Time
}

// Session drives one user's typography -> poster -> animation flow.
// Remote calls run without holding the lock; a Reset while a call is in
// flight bumps the epoch so the late result is dropped.
type Session struct {
	userID  uuid.UUID
	gen     Generator
	credits CreditChecker
	saver   ArtifactSaver
	logger  *slog.Logger
	now     func() time.Time

	mu    sync.Mutex
	state State
	epoch uint64
}

func NewSession(opts Options) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		userID:  opts.UserID,
		gen:     opts.Generator,
		credits: opts.Credits,
		saver:   opts.Saver,
		logger:  logging.OrDiscard(opts.Logger).With("user_id", opts.UserID.String()),
		now:     now,
		state:   Idle{},
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Busy reports whether a stage is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return inFlight(s.state)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.state, s.now())
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.state = Idle{}
}

// GenerateTypography starts the flow over with new input. It is allowed from
// any state that is not already generating.
func (s *Session) GenerateTypography(ctx context.Context, in TypographyInput) error {
	in = TypographyInput{
		Headline:    strings.TrimSpace(in.Headline),
		SubHeadline: strings.TrimSpace(in.SubHeadline),
		Style:       strings.TrimSpace(in.Style),
	}
	if in.Headline == "" {
		return &ValidationError{Field: "headline", Message: "headline is required"}
	}

	s.mu.Lock()
	if err := s.canStart(); err != nil {
		s.mu.Unlock()
		return err
	}
	flight := GeneratingTypography{Input: in, StartedAt: s.now()}
	epoch := s.begin(flight)
	s.mu.Unlock()

	return s.runTypography(ctx, epoch, flight)
}

func (s *Session) SelectTypography(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ready, ok := s.editable()
	if !ok {
		return invalidTransition("select typography", s.state.Status())
	}
	if !slices.Contains(ready.Options, url) {
		return &ValidationError{Field: "typographyUrl", Message: "typography option not found"}
	}
	ready.Selected = url
	s.state = ready
	return nil
}

func (s *Session) SetBackgroundDescription(desc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ready, ok := s.editable()
	if !ok {
		return invalidTransition("set background description", s.state.Status())
	}
	ready.BackgroundDescription = strings.TrimSpace(desc)
	s.state = ready
	return nil
}

func (s *Session) GeneratePoster(ctx context.Context) error {
	s.mu.Lock()
	if inFlight(s.state) {
		s.mu.Unlock()
		return ErrStageInProgress
	}
	ready, ok := s.editable()
	if !ok {
		st := s.state.Status()
		s.mu.Unlock()
		return invalidTransition("generate poster", st)
	}
	if ready.Selected == "" {
		s.mu.Unlock()
		return &ValidationError{Field: "typographyUrl", Message: "select a typography option first"}
	}
	if ready.BackgroundDescription == "" {
		s.mu.Unlock()
		return &ValidationError{Field: "backgroundDescription", Message: "background description is required"}
	}
	if err := s.canStart(); err != nil {
		s.mu.Unlock()
		return err
	}
	flight := GeneratingPoster{Typography: ready, StartedAt: s.now()}
	epoch := s.begin(flight)
	s.mu.Unlock()

	return s.runPoster(ctx, epoch, flight)
}

func (s *Session) Animate(ctx context.Context) error {
	s.mu.Lock()
	if inFlight(s.state) {
		s.mu.Unlock()
		return ErrStageInProgress
	}
	var poster Complete
	switch v := s.state.(type) {
	case Complete:
		poster = v
	case Failed:
		a, ok := v.Prior.(Animating)
		if !ok {
			s.mu.Unlock()
			return invalidTransition("animate", v.Status())
		}
		poster = a.Poster
	default:
		st := s.state.Status()
		s.mu.Unlock()
		return invalidTransition("animate", st)
	}
	if err := s.canStart(); err != nil {
		s.mu.Unlock()
		return err
	}
	flight := Animating{Poster: poster, StartedAt: s.now()}
	epoch := s.begin(flight)
	s.mu.Unlock()

	return s.runAnimation(ctx, epoch, flight)
}

// Retry re-runs the failed stage with the inputs it failed with.
func (s *Session) Retry(ctx context.Context) error {
	s.mu.Lock()
	failed, ok := s.state.(Failed)
	if !ok {
		st := s.state.Status()
		s.mu.Unlock()
		return invalidTransition("retry", st)
	}
	if err := s.canStart(); err != nil {
		s.mu.Unlock()
		return err
	}

	now := s.now()
	switch prior := failed.Prior.(type) {
	case GeneratingTypography:
		prior.StartedAt = now
		epoch := s.begin(prior)
		s.mu.Unlock()
		return s.runTypography(ctx, epoch, prior)
	case GeneratingPoster:
		prior.StartedAt = now
		epoch := s.begin(prior)
		s.mu.Unlock()
		return s.runPoster(ctx, epoch, prior)
	case Animating:
		prior.StartedAt = now
		epoch := s.begin(prior)
		s.mu.Unlock()
		return s.runAnimation(ctx, epoch, prior)
	}
	s.mu.Unlock()
	return invalidTransition("retry", StatusError)
}

func (s *Session) runTypography(ctx context.Context, epoch uint64, flight GeneratingTypography) error {
	var options, suggestions []string
	var g errgroup.Group

	g.Go(func() error {
		urls, err := s.gen.GenerateTypography(ctx, saltapi.TypographyRequest{
			Headline:    flight.Input.Headline,
			SubHeadline: flight.Input.SubHeadline,
			Style:       flight.Input.Style,
		})
		if err != nil {
			return err
		}
		options = urls
		return nil
	})
	g.Go(func() error {
		got, err := s.gen.SuggestBackgrounds(ctx, saltapi.SuggestRequest{
			Headline:    flight.Input.Headline,
			SubHeadline: flight.Input.SubHeadline,
		})
		if err != nil || len(got) == 0 {
			s.logger.Warn("Using fallback background suggestions", "error", err)
			got = FallbackSuggestions()
		}
		suggestions = got
		return nil
	})

	if err := g.Wait(); err != nil {
		return s.fail(epoch, StageTypography, flight, err, msgTypographyFailed)
	}

	s.finish(epoch, TypographyReady{Input: flight.Input, Options: options, Suggestions: suggestions})
	s.logger.Info("Typography generated", "options", len(options))
	return nil
}

func (s *Session) runPoster(ctx context.Context, epoch uint64, flight GeneratingPoster) error {
	ready := flight.Typography
	url, err := s.gen.GenerateFinal(ctx, saltapi.FinalRequest{
		TypographyURL:    ready.Selected,
		ImageDescription: ready.BackgroundDescription,
	})
	if err != nil {
		return s.fail(epoch, StagePoster, flight, err, msgPosterFailed)
	}

	if s.finish(epoch, Complete{Typography: ready, PosterURL: url}) {
		s.logger.Info("Poster generated", "url", url)
		s.persist(ctx, ArtifactPoster, url, ready)
	}
	return nil
}

func (s *Session) runAnimation(ctx context.Context, epoch uint64, flight Animating) error {
	poster := flight.Poster
	dataURL, err := s.gen.FetchDataURL(ctx, poster.PosterURL)
	if err != nil {
		return s.fail(epoch, StageAnimation, flight, err, msgAnimationFailed)
	}
	video, err := s.gen.Animate(ctx, dataURL)
	if err != nil {
		return s.fail(epoch, StageAnimation, flight, err, msgAnimationFailed)
	}

	done := poster
	done.VideoURL = video
	if s.finish(epoch, done) {
		s.logger.Info("Poster animated", "url", video)
		s.persist(ctx, ArtifactVideo, video, poster.Typography)
	}
	return nil
}

// canStart must be called with s.mu held.
func (s *Session) canStart() error {
	if inFlight(s.state) {
		return ErrStageInProgress
	}
	if s.credits == nil || !s.credits.CanStartStage() {
		return credits.ErrNoCredits
	}
	return nil
}

// begin must be called with s.mu held.
func (s *Session) begin(flight State) uint64 {
	s.epoch++
	s.state = flight
	return s.epoch
}

// editable returns the typography choices that can still be changed: either
// the ready state or the inputs of a failed poster attempt.
func (s *Session) editable() (TypographyReady, bool) {
	switch v := s.state.(type) {
	case TypographyReady:
		return v, true
	case Failed:
		if p, ok := v.Prior.(GeneratingPoster); ok {
			return p.Typography, true
		}
	}
	return TypographyReady{}, false
}

func (s *Session) finish(epoch uint64, next State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		s.logger.Debug("Dropping stale stage result", "status", next.Status())
		return false
	}
	s.state = next
	return true
}

func (s *Session) fail(epoch uint64, stage Stage, flight State, err error, fallback string) error {
	msg := saltapi.UserMessage(err, fallback)
	s.logger.Error("Generation stage failed", "stage", stage, "error", err)
	s.finish(epoch, Failed{Stage: stage, Message: msg, Prior: flight})
	return &StageError{Stage: stage, Message: msg, Err: err}
}

func (s *Session) persist(ctx context.Context, kind ArtifactKind, url string, ready TypographyReady) {
	if s.saver == nil {
		return
	}
	err := s.saver.SaveArtifact(context.WithoutCancel(ctx), Artifact{
		UserID: s.userID,
		Kind:   kind,
		URL:    url,
		Prompt: ready.BackgroundDescription,
		Topic:  ready.Input.Headline,
	})
	if err != nil {
		s.logger.Warn("Failed to save artifact", "kind", kind, "error", err)
	}
}
