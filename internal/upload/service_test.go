package upload

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hospinv/hospinv-backend/pkg/config"
	pkgerrors "github.com/hospinv/hospinv-backend/pkg/errors"
	"github.com/hospinv/hospinv-backend/pkg/imgbb"
	"github.com/hospinv/hospinv-backend/pkg/logger"
	"github.com/rs/zerolog"
)

type stubHost struct {
	result *imgbb.UploadResult
	err    error
	seen   []byte
}

func (h *stubHost) Upload(ctx context.Context, image []byte) (*imgbb.UploadResult, error) {
	h.seen = image
	if h.err != nil {
		return nil, h.err
	}
	return h.result, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "upload-test", Level: zerolog.ErrorLevel})
}

func testConfig(t *testing.T) config.UploadsConfig {
	t.Helper()
	return config.UploadsConfig{Dir: t.TempDir(), MaxUploadMB: 5}
}

func requireUploadError(t *testing.T, err error) {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUpload {
		t.Fatalf("expected upload error, got %v", err)
	}
}

func TestStoreRejectsUnknownExtension(t *testing.T) {
	svc, err := NewService(testConfig(t), nil, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	for _, name := range []string{"report.pdf", "image.bmp", "archive.zip", "noext"} {
		_, err := svc.Store(context.Background(), name, strings.NewReader("data"), 4)
		requireUploadError(t, err)
	}
}

func TestStoreRejectsOversizedDeclaredSize(t *testing.T) {
	svc, err := NewService(testConfig(t), nil, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Store(context.Background(), "big.png", strings.NewReader("x"), 6<<20)
	requireUploadError(t, err)
}

func TestStoreRejectsOversizedStream(t *testing.T) {
	cfg := config.UploadsConfig{Dir: t.TempDir(), MaxUploadMB: 1}
	svc, err := NewService(cfg, nil, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	payload := bytes.Repeat([]byte("a"), int(cfg.MaxUploadBytes())+10)
	_, err = svc.Store(context.Background(), "big.png", bytes.NewReader(payload), 10)
	requireUploadError(t, err)
}

func TestStoreLocalWritesFile(t *testing.T) {
	cfg := testConfig(t)
	svc, err := NewService(cfg, nil, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	image, err := svc.Store(context.Background(), "photo.JPG", strings.NewReader("fake-jpeg-bytes"), 15)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if image.ThumbnailURL != nil || image.DeleteURL != nil {
		t.Fatalf("local storage has no hosted URLs: %+v", image)
	}
	if filepath.Ext(image.URL) != ".jpg" {
		t.Fatalf("extension should be normalized, got %q", image.URL)
	}

	data, err := os.ReadFile(image.URL)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "fake-jpeg-bytes" {
		t.Fatalf("stored bytes differ: %q", data)
	}
}

func TestStoreHostedDelegates(t *testing.T) {
	host := &stubHost{
		result: &imgbb.UploadResult{
			URL:          "https://i.ibb.co/abc/photo.png",
			ThumbnailURL: "https://i.ibb.co/abc/photo-thumb.png",
			DeleteURL:    "https://ibb.co/delete/abc",
		},
	}
	svc, err := NewService(testConfig(t), host, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	image, err := svc.Store(context.Background(), "photo.png", strings.NewReader("png-bytes"), 9)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if image.URL != "https://i.ibb.co/abc/photo.png" {
		t.Fatalf("unexpected hosted url: %q", image.URL)
	}
	if image.ThumbnailURL == nil || *image.ThumbnailURL != "https://i.ibb.co/abc/photo-thumb.png" {
		t.Fatalf("unexpected thumbnail: %v", image.ThumbnailURL)
	}
	if string(host.seen) != "png-bytes" {
		t.Fatalf("host did not receive the payload: %q", host.seen)
	}
}

func TestRemoveLocal(t *testing.T) {
	cfg := testConfig(t)
	svc, err := NewService(cfg, nil, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	image, err := svc.Store(context.Background(), "photo.png", strings.NewReader("bytes"), 5)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	if err := svc.RemoveLocal(image.URL); err != nil {
		t.Fatalf("RemoveLocal: %v", err)
	}
	if _, err := os.Stat(image.URL); !os.IsNotExist(err) {
		t.Fatalf("file should be gone, stat err: %v", err)
	}

	// Missing files stay silent; repeated cleanup must not fail.
	if err := svc.RemoveLocal(image.URL); err != nil {
		t.Fatalf("repeated RemoveLocal: %v", err)
	}
}

func TestRemoveLocalRefusesEscape(t *testing.T) {
	svc, err := NewService(testConfig(t), nil, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if err := svc.RemoveLocal("/etc/passwd"); err == nil {
		t.Fatal("paths outside the uploads directory must be refused")
	}
	if err := svc.RemoveLocal("../outside.png"); err == nil {
		t.Fatal("relative escapes must be refused")
	}
}
