package uploads

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmart/storefront/pkg/config"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/logger"
	"github.com/campusmart/storefront/pkg/storage/gcs"
)

type stubStore struct {
	uploadFn func(name, contentType string, body []byte) (*gcs.Object, error)
	deleteFn func(name string) error
	deleted  []string
}

func (s *stubStore) Upload(_ context.Context, name, contentType string, body io.Reader) (*gcs.Object, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if s.uploadFn != nil {
		return s.uploadFn(name, contentType, data)
	}
	return &gcs.Object{
		Name:        name,
		Bucket:      "bucket",
		ContentType: contentType,
		Size:        uint64(len(data)),
		URL:         "https://storage.googleapis.com/bucket/" + name,
	}, nil
}

func (s *stubStore) Delete(_ context.Context, name string) error {
	s.deleted = append(s.deleted, name)
	if s.deleteFn != nil {
		return s.deleteFn(name)
	}
	return nil
}

func (s *stubStore) ObjectName(rawURL string) (string, bool) {
	const prefix = "https://storage.googleapis.com/bucket/"
	if !strings.HasPrefix(rawURL, prefix) || rawURL == prefix {
		return "", false
	}
	return strings.TrimPrefix(rawURL, prefix), true
}

func newTestService(t *testing.T, store *stubStore) *service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Store:  store,
		GCS:    config.GCSConfig{BucketName: "bucket", UploadPrefix: "/products/"},
		Media:  config.MediaConfig{MaxUploadMB: 1},
		Logger: logger.New(logger.Options{ServiceName: "uploads-test", Output: io.Discard}),
	})
	require.NoError(t, err)
	impl := svc.(*service)
	impl.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return impl
}

func TestUploadStoresUnderTimestampedName(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(t, store)

	res, err := svc.Upload(context.Background(), UploadInput{
		FileName:    "../My Rice Bag.png",
		ContentType: "image/PNG; charset=binary",
		Size:        4,
		Body:        bytes.NewReader([]byte("data")),
	})
	require.NoError(t, err)
	assert.Equal(t, "products/1700000000123-My-Rice-Bag.png", res.Path)
	assert.Equal(t, "https://storage.googleapis.com/bucket/products/1700000000123-My-Rice-Bag.png", res.URL)
	assert.Equal(t, "image/png", res.ContentType)
}

func TestUploadRejectsNonImagesAndOversize(t *testing.T) {
	svc := newTestService(t, &stubStore{})

	_, err := svc.Upload(context.Background(), UploadInput{FileName: "a.pdf", ContentType: "application/pdf", Size: 10, Body: strings.NewReader("x")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Upload(context.Background(), UploadInput{FileName: "a.png", ContentType: "image/png", Size: 2 << 20, Body: strings.NewReader("x")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Upload(context.Background(), UploadInput{FileName: "a.png", ContentType: "", Size: 1, Body: strings.NewReader("x")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUploadStoreFailureIsDependency(t *testing.T) {
	store := &stubStore{uploadFn: func(string, string, []byte) (*gcs.Object, error) {
		return nil, io.ErrUnexpectedEOF
	}}
	svc := newTestService(t, store)

	_, err := svc.Upload(context.Background(), UploadInput{FileName: "a.png", ContentType: "image/png", Size: 1, Body: strings.NewReader("x")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestDeleteByURL(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(t, store)

	require.NoError(t, svc.Delete(context.Background(), "https://storage.googleapis.com/bucket/products/1-a.png"))
	assert.Equal(t, []string{"products/1-a.png"}, store.deleted)

	err := svc.Delete(context.Background(), "https://example.com/other/a.png")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	store.deleteFn = func(string) error { return gcs.ErrObjectNotFound }
	assert.NoError(t, svc.Delete(context.Background(), "https://storage.googleapis.com/bucket/products/gone.png"))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "photo.jpg", sanitizeFileName(`C:\Users\x\photo.jpg`))
	assert.Equal(t, "", sanitizeFileName("   "))
	assert.Equal(t, "a-b.png", sanitizeFileName("a b.png"))
}
