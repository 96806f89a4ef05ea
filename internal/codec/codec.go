package codec

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"

	"github.com/kuromame0210/ai-skincare-predictor/internal/domain"
	"github.com/kuromame0210/ai-skincare-predictor/internal/storage"
)

// Canonical request resolutions accepted by the edit providers.
const (
	SizeLarge = "1024x1024"
	SizeSmall = "512x512"
)

// Stored generated artifacts are re-encoded as lossy JPEG at this quality.
const jpegQuality = 80

// Codec converts uploaded images into the canonical submission format and
// re-encodes provider output into its storage form.
type Codec struct {
	store      *storage.FileStore
	httpClient *http.Client
}

// New constructs a Codec. A nil httpClient gets a default with a timeout.
func New(store *storage.FileStore, httpClient *http.Client) *Codec {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Codec{store: store, httpClient: httpClient}
}

// NormalizeForSubmission decodes arbitrary image bytes and re-encodes them as
// an RGBA PNG, the one input format both edit models accept. It returns the
// encoded payload along with the source dimensions.
func (c *Codec) NormalizeForSubmission(raw []byte) ([]byte, int, int, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, 0, &domain.DecodeError{Err: err}
	}
	// Clone yields NRGBA, so the alpha channel is always present.
	rgba := imaging.Clone(img)
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, 0, 0, &domain.EncodeError{Err: err}
	}
	bounds := rgba.Bounds()
	return buf.Bytes(), bounds.Dx(), bounds.Dy(), nil
}

// PersistGenerated writes the provider output at the given storage key as a
// quality-reduced JPEG. When only a remote reference is available the bytes
// are fetched first.
func (c *Codec) PersistGenerated(ctx context.Context, data []byte, srcURL, key string) (string, error) {
	if len(data) == 0 {
		fetched, err := c.fetch(ctx, srcURL)
		if err != nil {
			return "", err
		}
		data = fetched
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", &domain.EncodeError{Err: err}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", &domain.EncodeError{Err: err}
	}
	storageKey, err := c.store.Write(ctx, key, buf.Bytes())
	if err != nil {
		return "", &domain.EncodeError{Err: err}
	}
	return storageKey, nil
}

func (c *Codec) fetch(ctx context.Context, srcURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return nil, &domain.RetrievalError{URL: srcURL, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.RetrievalError{URL: srcURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, &domain.RetrievalError{URL: srcURL, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.RetrievalError{URL: srcURL, Err: err}
	}
	return data, nil
}

// OptimalSize picks a request resolution from the source aspect ratio.
// Non-square inputs get the larger canonical size to preserve detail;
// near-square inputs trade fidelity for latency.
func OptimalSize(aspectRatio float64) string {
	switch {
	case aspectRatio > 1.2:
		return SizeLarge
	case aspectRatio < 0.8:
		return SizeLarge
	default:
		return SizeSmall
	}
}
