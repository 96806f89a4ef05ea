package codec

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kuromame0210/ai-skincare-predictor/internal/domain"
	"github.com/kuromame0210/ai-skincare-predictor/internal/storage"
)

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func newTestCodec(t *testing.T) (*Codec, *storage.FileStore) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return New(store, nil), store
}

func TestNormalizeForSubmission(t *testing.T) {
	c, _ := newTestCodec(t)
	normalized, width, height, err := c.NormalizeForSubmission(encodeTestJPEG(t, 800, 600))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if width != 800 || height != 600 {
		t.Fatalf("dimensions = %dx%d, want 800x600", width, height)
	}
	decoded, err := png.Decode(bytes.NewReader(normalized))
	if err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}
	if _, ok := decoded.(*image.NRGBA); !ok {
		t.Fatalf("output pixel format = %T, want *image.NRGBA", decoded)
	}
}

func TestNormalizeForSubmissionRejectsGarbage(t *testing.T) {
	c, _ := newTestCodec(t)
	_, _, _, err := c.NormalizeForSubmission([]byte("not an image"))
	var decodeErr *domain.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("err = %v, want DecodeError", err)
	}
}

func TestPersistGeneratedFromInlineBytes(t *testing.T) {
	c, store := newTestCodec(t)
	key, err := c.PersistGenerated(context.Background(), encodeTestJPEG(t, 64, 64), "", "generated_abc.jpg")
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	data, err := store.Read(context.Background(), key)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("stored artifact is not JPEG: %v", err)
	}
}

func TestPersistGeneratedFetchesRemoteReference(t *testing.T) {
	payload := encodeTestJPEG(t, 64, 64)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(payload)
	}))
	defer ts.Close()

	c, store := newTestCodec(t)
	key, err := c.PersistGenerated(context.Background(), nil, ts.URL+"/out.jpg", "generated_abc.jpg")
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	if _, err := store.Read(context.Background(), key); err != nil {
		t.Fatalf("read back: %v", err)
	}
}

func TestPersistGeneratedRetrievalFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c, _ := newTestCodec(t)
	_, err := c.PersistGenerated(context.Background(), nil, ts.URL+"/gone.jpg", "generated_abc.jpg")
	var retrievalErr *domain.RetrievalError
	if !errors.As(err, &retrievalErr) {
		t.Fatalf("err = %v, want RetrievalError", err)
	}
}

func TestPersistGeneratedBadPayload(t *testing.T) {
	c, _ := newTestCodec(t)
	_, err := c.PersistGenerated(context.Background(), []byte("junk"), "", "generated_abc.jpg")
	var encodeErr *domain.EncodeError
	if !errors.As(err, &encodeErr) {
		t.Fatalf("err = %v, want EncodeError", err)
	}
}

func TestOptimalSize(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{1.5, SizeLarge},
		{1.21, SizeLarge},
		{1.2, SizeSmall},
		{1.0, SizeSmall},
		{0.8, SizeSmall},
		{0.79, SizeLarge},
		{0.5, SizeLarge},
	}
	for _, tt := range tests {
		if got := OptimalSize(tt.ratio); got != tt.want {
			t.Fatalf("OptimalSize(%v) = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}
