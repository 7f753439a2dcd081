package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hospinv/hospinv-backend/internal/inventory"
	"github.com/hospinv/hospinv-backend/pkg/config"
	pkgerrors "github.com/hospinv/hospinv-backend/pkg/errors"
	"github.com/hospinv/hospinv-backend/pkg/imgbb"
	"github.com/hospinv/hospinv-backend/pkg/logger"
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

type hostedUploader interface {
	Upload(ctx context.Context, image []byte) (*imgbb.UploadResult, error)
}

// Service stores item images. With a hosted uploader configured the bytes go
// to the external host; otherwise they land on local disk under the
// configured uploads directory.
type Service struct {
	cfg    config.UploadsConfig
	hosted hostedUploader
	logg   *logger.Logger
}

// NewService builds an upload service. The hosted uploader is optional.
func NewService(cfg config.UploadsConfig, hosted hostedUploader, logg *logger.Logger) (*Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("uploads directory required")
	}
	return &Service{cfg: cfg, hosted: hosted, logg: logg}, nil
}

// Store validates and persists one image, returning the stored locations.
// Oversized or non-image files are rejected as upload errors.
func (s *Service) Store(ctx context.Context, filename string, r io.Reader, size int64) (*inventory.ImageData, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUpload, "only jpg, jpeg, png, and gif images are accepted")
	}
	if size > s.cfg.MaxUploadBytes() {
		return nil, pkgerrors.New(pkgerrors.CodeUpload,
			fmt.Sprintf("image exceeds the %dMB limit", s.cfg.MaxUploadMB))
	}

	// One byte past the declared size catches senders that understate it.
	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxUploadBytes()+1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpload, err, "read image")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes() {
		return nil, pkgerrors.New(pkgerrors.CodeUpload,
			fmt.Sprintf("image exceeds the %dMB limit", s.cfg.MaxUploadMB))
	}
	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUpload, "image payload is empty")
	}

	if s.hosted != nil {
		return s.storeHosted(ctx, data)
	}
	return s.storeLocal(ctx, ext, data)
}

func (s *Service) storeHosted(ctx context.Context, data []byte) (*inventory.ImageData, error) {
	result, err := s.hosted.Upload(ctx, data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload image to host")
	}
	image := &inventory.ImageData{URL: result.URL}
	if result.ThumbnailURL != "" {
		thumb := result.ThumbnailURL
		image.ThumbnailURL = &thumb
	}
	if result.DeleteURL != "" {
		del := result.DeleteURL
		image.DeleteURL = &del
	}
	return image, nil
}

func (s *Service) storeLocal(ctx context.Context, ext string, data []byte) (*inventory.ImageData, error) {
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create uploads directory")
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.cfg.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write image file")
	}

	s.logg.Info(s.logg.WithField(ctx, "path", path), "stored local image")
	return &inventory.ImageData{URL: path}, nil
}

// RemoveLocal deletes a locally stored image. Paths outside the uploads
// directory are refused; a missing file is not an error.
func (s *Service) RemoveLocal(path string) error {
	cleaned := filepath.Clean(path)
	dir := filepath.Clean(s.cfg.Dir) + string(filepath.Separator)
	if !strings.HasPrefix(cleaned, dir) {
		return fmt.Errorf("path %q is outside the uploads directory", path)
	}
	if err := os.Remove(cleaned); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
