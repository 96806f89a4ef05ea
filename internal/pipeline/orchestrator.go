package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kuromame0210/ai-skincare-predictor/internal/codec"
	"github.com/kuromame0210/ai-skincare-predictor/internal/domain"
	"github.com/kuromame0210/ai-skincare-predictor/internal/infra"
	"github.com/kuromame0210/ai-skincare-predictor/internal/providers/image"
	"github.com/kuromame0210/ai-skincare-predictor/internal/storage"
	"github.com/kuromame0210/ai-skincare-predictor/internal/store"
)

// DefaultPrompt instructs the providers to simulate mild skincare neglect
// while keeping the subject recognizable.
const DefaultPrompt = "Add subtle skin imperfections: light age spots, slightly dull skin, minor pores, faint under-eye circles. Keep natural appearance - same person and age with minor skincare neglect effects only."

const (
	originalKeyPattern  = "original_%s.png"
	generatedKeyPattern = "generated_%s.jpg"
)

// EditChain is the provider gateway contract the orchestrator drives.
type EditChain interface {
	Edit(ctx context.Context, req image.EditRequest) (*image.Artifact, string, error)
}

// Config wires the orchestrator's collaborators.
type Config struct {
	Sessions *store.SessionStore
	Results  *store.ResultStore
	Codec    *codec.Codec
	Chain    EditChain
	Storage  *storage.FileStore
	BaseURL  string
	Prompt   string
	Logger   *infra.Logger
}

// Orchestrator drives one generation session from submission to a terminal
// state: normalize the upload, invoke the provider chain, persist the output,
// and record completion. Every fault converts to the session error state;
// nothing propagates across the submission boundary.
type Orchestrator struct {
	sessions *store.SessionStore
	results  *store.ResultStore
	codec    *codec.Codec
	chain    EditChain
	storage  *storage.FileStore
	baseURL  string
	prompt   string
	logger   *infra.Logger
}

func New(cfg Config) *Orchestrator {
	prompt := strings.TrimSpace(cfg.Prompt)
	if prompt == "" {
		prompt = DefaultPrompt
	}
	logger := cfg.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Orchestrator{
		sessions: cfg.Sessions,
		results:  cfg.Results,
		codec:    cfg.Codec,
		chain:    cfg.Chain,
		storage:  cfg.Storage,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		prompt:   prompt,
		logger:   logger,
	}
}

// Submit initializes the session and launches its pipeline run in the
// background. The returned channel closes when the run reaches a terminal
// state; fire-and-forget callers may discard it.
func (o *Orchestrator) Submit(id string, raw []byte) <-chan struct{} {
	o.sessions.Initialize(id)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if v := recover(); v != nil {
				o.fail(id, fmt.Errorf("panic: %v", v))
			}
		}()
		o.run(context.Background(), id, raw)
	}()
	return done
}

// Status returns the session's progress record; unknown ids yield the
// pending sentinel.
func (o *Orchestrator) Status(id string) domain.SessionRecord {
	return o.sessions.Get(id)
}

// Result returns the completed-artifact record, if the session has one.
func (o *Orchestrator) Result(id string) (domain.ResultRecord, bool) {
	return o.results.Get(id)
}

// OriginalURL returns the public URL of the session's normalized upload. The
// location is deterministic, so the upload response can reference it before
// the pipeline has written the file.
func (o *Orchestrator) OriginalURL(id string) string {
	return o.artifactURL(fmt.Sprintf(originalKeyPattern, id))
}

// OriginalKey and GeneratedKey expose the deterministic storage locations of
// a session's artifacts.
func OriginalKey(id string) string  { return fmt.Sprintf(originalKeyPattern, id) }
func GeneratedKey(id string) string { return fmt.Sprintf(generatedKeyPattern, id) }

func (o *Orchestrator) run(ctx context.Context, id string, raw []byte) {
	o.logger.Info().Str("session_id", id).Msg("generation started")
	o.sessions.Update(id, func(r *domain.SessionRecord) {
		r.Status = domain.StatusProcessing
		r.Progress = 10
		r.Message = "starting AI image generation"
		r.StartedAt = time.Now()
	})

	normalized, width, height, err := o.codec.NormalizeForSubmission(raw)
	if err != nil {
		o.fail(id, err)
		return
	}
	originalKey := OriginalKey(id)
	if _, err := o.storage.Write(ctx, originalKey, normalized); err != nil {
		o.fail(id, &domain.EncodeError{Err: err})
		return
	}

	o.sessions.Update(id, func(r *domain.SessionRecord) {
		r.Progress = 30
		r.Message = "submitting image to the generation provider"
	})

	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	artifact, model, err := o.chain.Edit(ctx, image.EditRequest{
		Image:     normalized,
		Filename:  originalKey,
		Prompt:    o.prompt,
		Size:      codec.OptimalSize(aspect),
		SessionID: id,
	})
	if err != nil {
		o.fail(id, err)
		return
	}

	o.sessions.Update(id, func(r *domain.SessionRecord) {
		r.Progress = 70
		r.Message = "retrieving the generated image"
	})

	generatedKey := GeneratedKey(id)
	if _, err := o.codec.PersistGenerated(ctx, artifact.Data, artifact.URL, generatedKey); err != nil {
		o.fail(id, err)
		return
	}

	completed := time.Now()
	o.results.Put(id, domain.ResultRecord{
		SessionID:    id,
		OriginalURL:  o.artifactURL(originalKey),
		GeneratedURL: o.artifactURL(generatedKey),
		ModelUsed:    model,
		CreatedAt:    o.sessions.Get(id).CreatedAt,
		CompletedAt:  completed,
	})
	o.sessions.Update(id, func(r *domain.SessionRecord) {
		r.Status = domain.StatusCompleted
		r.Progress = 100
		r.Message = "generation complete"
		r.CompletedAt = completed
	})
	o.logger.Info().Str("session_id", id).Str("model", model).Msg("generation completed")
}

func (o *Orchestrator) fail(id string, err error) {
	o.logger.Error().Err(err).Str("session_id", id).Msg("generation failed")
	now := time.Now()
	o.sessions.Update(id, func(r *domain.SessionRecord) {
		r.Status = domain.StatusError
		r.Progress = 0
		r.Message = "generation failed: " + err.Error()
		r.Error = err.Error()
		r.FailedAt = now
	})
}

func (o *Orchestrator) artifactURL(key string) string {
	return o.baseURL + "/images/" + key
}
