package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalImages keeps uploaded images on disk under dir and serves them under
// urlPrefix (e.g. "/uploads").
type LocalImages struct {
	dir       string
	urlPrefix string
}

func NewLocalImages(dir, urlPrefix string) *LocalImages {
	return &LocalImages{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Dir is the directory the HTTP layer serves.
func (l *LocalImages) Dir() string { return l.dir }

// URLPrefix is the path the HTTP layer serves Dir under.
func (l *LocalImages) URLPrefix() string { return l.urlPrefix }

func (l *LocalImages) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid image key %q", key)
	}
	return filepath.Join(l.dir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (l *LocalImages) PutImage(_ context.Context, key, _ string, data []byte) (string, error) {
	p, err := l.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", err
	}
	return l.urlPrefix + path.Clean("/"+key), nil
}

// DeleteImage removes the file behind url. A file that is already gone is not
// an error; a URL this store did not issue is.
func (l *LocalImages) DeleteImage(_ context.Context, url string) error {
	if !strings.HasPrefix(url, l.urlPrefix+"/") {
		return fmt.Errorf("image %q is not stored here", url)
	}
	p, err := l.resolve(strings.TrimPrefix(url, l.urlPrefix+"/"))
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
