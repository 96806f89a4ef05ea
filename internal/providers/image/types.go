package image

import "context"

// Artifact is the normalized output of an edit attempt: either a fetchable
// remote reference or inline payload bytes, never both.
type Artifact struct {
	URL  string
	Data []byte
}

// EditRequest describes a normalized edit invocation passed to any provider.
// Image carries the canonical RGBA PNG payload produced by the codec.
type EditRequest struct {
	Image     []byte
	Filename  string
	Prompt    string
	Size      string
	SessionID string
}

// Editor is the contract implemented by all image edit providers.
type Editor interface {
	Model() string
	Edit(ctx context.Context, req EditRequest) (*Artifact, error)
}
