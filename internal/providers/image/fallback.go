package image

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/kuromame0210/ai-skincare-predictor/internal/domain"
	"github.com/kuromame0210/ai-skincare-predictor/internal/infra"
)

// FallbackChain tries an ordered list of editors and returns the first
// successful artifact together with the model that produced it. Earlier
// failures are logged and swallowed; only when every attempt fails does the
// chain surface an error, a GenerationError carrying the last attempt's
// diagnostic. No partial artifact is emitted in that case.
type FallbackChain struct {
	editors []Editor
	logger  *infra.Logger
}

func NewFallbackChain(logger *infra.Logger, editors ...Editor) *FallbackChain {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &FallbackChain{editors: editors, logger: logger}
}

func (f *FallbackChain) Edit(ctx context.Context, req EditRequest) (*Artifact, string, error) {
	var lastErr error
	lastModel := ""
	for _, editor := range f.editors {
		artifact, err := editor.Edit(ctx, req)
		if err == nil {
			f.logger.Info().
				Str("session_id", req.SessionID).
				Str("model", editor.Model()).
				Msg("image edit succeeded")
			return artifact, editor.Model(), nil
		}
		f.logger.Warn().
			Err(err).
			Str("session_id", req.SessionID).
			Str("model", editor.Model()).
			Msg("image edit attempt failed")
		lastErr = err
		lastModel = editor.Model()
	}
	if lastErr == nil {
		lastErr = errors.New("no editors configured")
	}
	return nil, "", &domain.GenerationError{Model: lastModel, Err: lastErr}
}
