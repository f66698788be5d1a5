package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrObjectNotFound is returned when a key has no stored bytes.
var ErrObjectNotFound = errors.New("object not found")

// Object describes an uploaded blob.
type Object struct {
	Key         string
	URL         string
	Size        int64
	ContentType string
}

// BlobStore uploads bytes and hands back a URL that retrieves them.
type BlobStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (*Object, error)
	Open(ctx context.Context, key string) (*os.File, error)
	Delete(ctx context.Context, key string) error
	URL(key string) (string, error)
	Resolve(token string) (string, error)
}

// LocalBlobStore persists objects on disk under a base directory and serves them through
// HMAC signed URLs rooted at urlPrefix.
type LocalBlobStore struct {
	baseDir   string
	urlPrefix string
	signer    *SignedURLSigner
}

// NewLocalBlobStore ensures the base directory exists and returns a handle.
func NewLocalBlobStore(baseDir, urlPrefix string, signer *SignedURLSigner) (*LocalBlobStore, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	if urlPrefix == "" {
		urlPrefix = "/files/"
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &LocalBlobStore{baseDir: baseDir, urlPrefix: urlPrefix, signer: signer}, nil
}

// Upload copies from reader into the object path and returns a signed URL for it.
func (s *LocalBlobStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (*Object, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("prepare blob directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create blob file: %w", err)
	}
	size, copyErr := io.Copy(file, r)
	closeErr := file.Close()
	if copyErr != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write blob stream: %w", copyErr)
	}
	if closeErr != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("close blob file: %w", closeErr)
	}

	url, err := s.URL(key)
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return &Object{Key: key, URL: url, Size: size, ContentType: contentType}, nil
}

// Open returns a read-only handle for the stored object.
func (s *LocalBlobStore) Open(ctx context.Context, key string) (*os.File, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("open blob file: %w", err)
	}
	return file, nil
}

// Delete removes the object. Missing objects are not an error.
func (s *LocalBlobStore) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob file: %w", err)
	}
	return nil
}

// URL signs a fresh download URL for key.
func (s *LocalBlobStore) URL(key string) (string, error) {
	token, _, err := s.signer.Generate(key)
	if err != nil {
		return "", fmt.Errorf("sign blob url: %w", err)
	}
	return s.urlPrefix + token, nil
}

// Resolve validates a download token and returns the object key.
func (s *LocalBlobStore) Resolve(token string) (string, error) {
	key, _, err := s.signer.Parse(token)
	if err != nil {
		return "", err
	}
	return key, nil
}

// resolve maps a key to a path, refusing anything that escapes the base directory.
func (s *LocalBlobStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || clean == ".." {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.baseDir, clean), nil
}
