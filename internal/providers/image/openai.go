package image

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/kuromame0210/ai-skincare-predictor/internal/providers/openai"
)

// OpenAIEditorConfig pins an OpenAI model and its request constraints.
// FixedSize overrides the caller-selected size when set; dall-e-2 only
// supports its own square sizes and needs an explicit response format.
type OpenAIEditorConfig struct {
	Model          string
	FixedSize      string
	ResponseFormat string
}

// OpenAIEditor adapts the raw OpenAI client to the Editor contract for one
// configured model.
type OpenAIEditor struct {
	client *openai.Client
	cfg    OpenAIEditorConfig
}

func NewOpenAIEditor(client *openai.Client, cfg OpenAIEditorConfig) *OpenAIEditor {
	return &OpenAIEditor{client: client, cfg: cfg}
}

// Model returns the provider model identifier.
func (e *OpenAIEditor) Model() string {
	return e.cfg.Model
}

func (e *OpenAIEditor) Edit(ctx context.Context, req EditRequest) (*Artifact, error) {
	size := req.Size
	if e.cfg.FixedSize != "" {
		size = e.cfg.FixedSize
	}
	res, err := e.client.Edit(ctx, openai.EditRequest{
		Model:          e.cfg.Model,
		Image:          req.Image,
		Filename:       req.Filename,
		Prompt:         req.Prompt,
		Size:           size,
		ResponseFormat: e.cfg.ResponseFormat,
	})
	if err != nil {
		return nil, err
	}
	if res.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(res.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode inline payload: %w", err)
		}
		return &Artifact{Data: data}, nil
	}
	return &Artifact{URL: res.URL}, nil
}

var _ Editor = (*OpenAIEditor)(nil)
