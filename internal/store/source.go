package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned when a data file does not exist at the source.
var ErrNotFound = errors.New("data file not found")

// Source fetches data files by their path relative to the hosting root.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
	String() string
}

// Open returns an HTTPSource for http(s) origins and a DirSource otherwise.
func Open(root string, timeout time.Duration) (Source, error) {
	if strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://") {
		return NewHTTPSource(root, timeout)
	}
	return NewDirSource(root), nil
}

// HTTPSource reads data files with GET requests against an origin.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

func NewHTTPSource(origin string, timeout time.Duration) (*HTTPSource, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse origin: unsupported scheme %q", u.Scheme)
	}
	return &HTTPSource{
		base:   u,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	u := s.base.JoinPath(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("get %s: %w", name, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %s", name, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (s *HTTPSource) String() string { return s.base.String() }

// DirSource reads data files from a local hosting root such as ./public.
type DirSource struct {
	root string
}

func NewDirSource(root string) DirSource {
	return DirSource{root: root}
}

func (s DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (s DirSource) String() string { return s.root }
