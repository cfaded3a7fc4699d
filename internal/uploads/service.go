package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/campusmart/storefront/pkg/config"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/logger"
	"github.com/campusmart/storefront/pkg/storage/gcs"
)

type blobStore interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader) (*gcs.Object, error)
	Delete(ctx context.Context, name string) error
	ObjectName(rawURL string) (string, bool)
}

// Service stores admin product images in the bucket.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, rawURL string) error
}

// UploadInput is one image read from a multipart form.
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult is returned to the admin client.
type UploadResult struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type ServiceParams struct {
	Store  blobStore
	GCS    config.GCSConfig
	Media  config.MediaConfig
	Logger *logger.Logger
}

type service struct {
	store    blobStore
	prefix   string
	maxBytes int64
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("blob store required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	prefix := strings.Trim(strings.TrimSpace(params.GCS.UploadPrefix), "/")
	if prefix == "" {
		prefix = "products"
	}
	maxBytes := params.Media.MaxUploadBytes()
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	return &service{
		store:    params.Store,
		prefix:   prefix,
		maxBytes: maxBytes,
		logg:     params.Logger,
		now:      time.Now,
	}, nil
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if input.Body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is required")
	}
	contentType, err := parseContentType(input.ContentType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid content type")
	}
	if !isAllowedImage(contentType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only "+allowedImageDescription()+" are allowed").
			WithDetails(map[string]any{"contentType": contentType})
	}
	if input.Size <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}
	if input.Size > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("file must be at most %d bytes", s.maxBytes)).
			WithDetails(map[string]any{"maxBytes": s.maxBytes})
	}

	name := s.objectName(input.FileName)
	obj, err := s.store.Upload(ctx, name, contentType, io.LimitReader(input.Body, s.maxBytes))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload image")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"object":       obj.Name,
		"content_type": contentType,
		"size":         input.Size,
	}), "image uploaded")

	return &UploadResult{URL: obj.URL, Path: obj.Name, ContentType: contentType, Size: input.Size}, nil
}

// Delete removes the object behind a public URL of the configured bucket.
// An already missing object counts as deleted.
func (s *service) Delete(ctx context.Context, rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "url is required")
	}
	name, ok := s.store.ObjectName(rawURL)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "url does not belong to the image bucket")
	}
	if err := s.store.Delete(ctx, name); err != nil {
		if errors.Is(err, gcs.ErrObjectNotFound) {
			s.logg.Warn(s.logg.WithField(ctx, "object", name), "image already deleted")
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete image")
	}
	s.logg.Info(s.logg.WithField(ctx, "object", name), "image deleted")
	return nil
}

func (s *service) objectName(fileName string) string {
	clean := sanitizeFileName(fileName)
	if clean == "" {
		clean = "image"
	}
	return fmt.Sprintf("%s/%d-%s", s.prefix, s.now().UnixMilli(), clean)
}

func sanitizeFileName(name string) string {
	trimmed := strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if trimmed == "" {
		return ""
	}
	clean := path.Base(trimmed)
	if clean == "." || clean == "/" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), ".-")
}
