package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"

	"github.com/campusmart/storefront/pkg/config"
	"github.com/campusmart/storefront/pkg/logger"
)

const (
	publicHost  = "https://storage.googleapis.com"
	pingTimeout = 5 * time.Second
)

// ErrObjectNotFound is returned when the object does not exist in the bucket.
var ErrObjectNotFound = errors.New("gcs object not found")

// Object describes an uploaded blob.
type Object struct {
	Name        string
	Bucket      string
	ContentType string
	Size        uint64
	URL         string
}

// Client wraps the JSON storage API for a single bucket.
type Client struct {
	svc    *storage.Service
	bucket string
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// NewClient builds a storage client for cfg.BucketName and verifies the
// bucket is reachable. Extra options are appended after credentials.
func NewClient(ctx context.Context, cfg config.GCSConfig, gcp config.GCPConfig, logg *logger.Logger, extra ...option.ClientOption) (*Client, error) {
	if strings.TrimSpace(cfg.BucketName) == "" {
		return nil, errors.New("gcs bucket name is required")
	}

	opts := []option.ClientOption{option.WithScopes(storage.DevstorageReadWriteScope)}
	switch {
	case gcp.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(gcp.CredentialsJSON)))
	case gcp.ApplicationCredentials != "":
		opts = append(opts, option.WithCredentialsFile(gcp.ApplicationCredentials))
	}
	opts = append(opts, extra...)

	svc, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage service: %w", err)
	}

	client := &Client{svc: svc, bucket: cfg.BucketName}
	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("gcs health check failed: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "bucket", cfg.BucketName), "gcs client initialized")
	}
	return client, nil
}

func (c *Client) Bucket() string {
	if c == nil {
		return ""
	}
	return c.bucket
}

// Ping fetches the bucket metadata.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.svc == nil {
		return errors.New("gcs client not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if _, err := c.svc.Buckets.Get(c.bucket).Context(ctx).Do(); err != nil {
		return fmt.Errorf("get bucket %s: %w", c.bucket, err)
	}
	return nil
}

// Upload streams body into name and makes the object publicly readable.
func (c *Client) Upload(ctx context.Context, name, contentType string, body io.Reader) (*Object, error) {
	if c == nil || c.svc == nil {
		return nil, errors.New("gcs client not initialized")
	}
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	if name == "" {
		return nil, errors.New("object name is required")
	}

	obj, err := c.svc.Objects.Insert(c.bucket, &storage.Object{
		Name:         name,
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000",
	}).
		Media(body, googleapi.ContentType(contentType)).
		PredefinedAcl("publicRead").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}

	return &Object{
		Name:        obj.Name,
		Bucket:      c.bucket,
		ContentType: obj.ContentType,
		Size:        obj.Size,
		URL:         c.PublicURL(obj.Name),
	}, nil
}

// Delete removes name. A missing object yields ErrObjectNotFound.
func (c *Client) Delete(ctx context.Context, name string) error {
	if c == nil || c.svc == nil {
		return errors.New("gcs client not initialized")
	}
	err := c.svc.Objects.Delete(c.bucket, name).Context(ctx).Do()
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return ErrObjectNotFound
	}
	return fmt.Errorf("delete %s: %w", name, err)
}

// PublicURL is the anonymous download URL of name.
func (c *Client) PublicURL(name string) string {
	escaped := strings.Split(name, "/")
	for i, part := range escaped {
		escaped[i] = url.PathEscape(part)
	}
	return fmt.Sprintf("%s/%s/%s", publicHost, c.bucket, strings.Join(escaped, "/"))
}

// ObjectName extracts the object path from a public URL of this bucket.
func (c *Client) ObjectName(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme+"://"+u.Host != publicHost {
		return "", false
	}
	prefix := "/" + c.bucket + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(u.Path, prefix)
	if name == "" {
		return "", false
	}
	return name, true
}
