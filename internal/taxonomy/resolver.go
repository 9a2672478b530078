// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

// Package taxonomy maps taxonomy reference URLs onto a pre-populated local
// cache directory so the validation engine can resolve schema and linkbase
// references without network access.
//
// The layout convention is {root}/{scheme}/{host}/{path}. The cache is
// populated out-of-band and treated as read-only at runtime; a reference
// that is absent from the cache surfaces later as an error-severity
// validation message, never as a remote fetch.
package taxonomy

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrInvalidURL is returned for references that cannot be mapped onto the
// cache layout (missing scheme or host, path traversal).
var ErrInvalidURL = errors.New("taxonomy: invalid reference URL")

// Resolver resolves taxonomy URLs to paths under a fixed cache root.
// The zero value is not usable; construct with NewResolver.
type Resolver struct {
	root string
}

// NewResolver creates a resolver rooted at dir. The directory does not have
// to exist yet; missing cache contents are a validation-time concern, not a
// startup failure.
func NewResolver(dir string) (*Resolver, error) {
	if dir == "" {
		return nil, errors.New("taxonomy: cache directory must not be empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: resolve cache directory: %w", err)
	}
	return &Resolver{root: abs}, nil
}

// Root returns the absolute cache root directory.
func (r *Resolver) Root() string {
	return r.root
}

// CachePath maps a taxonomy reference URL onto its local cache path.
// The mapping is deterministic and injective: the full scheme/host/path
// triple is preserved, so distinct URLs never collide.
func (r *Resolver) CachePath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidURL, rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q: scheme and host are required", ErrInvalidURL, rawURL)
	}

	// Normalize the URL path without letting ".." segments escape the root.
	cleaned := path.Clean("/" + u.Path)
	if cleaned == "/" {
		return "", fmt.Errorf("%w: %q: empty path", ErrInvalidURL, rawURL)
	}

	rel := filepath.Join(u.Scheme, u.Host, filepath.FromSlash(cleaned))
	full := filepath.Join(r.root, rel)
	if !strings.HasPrefix(full, r.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q: escapes cache root", ErrInvalidURL, rawURL)
	}
	return full, nil
}

// Has reports whether the referenced file is present in the cache.
func (r *Resolver) Has(rawURL string) bool {
	p, err := r.CachePath(rawURL)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// Entry describes one cached taxonomy file.
type Entry struct {
	// URL is the taxonomy reference reconstructed from the cache layout.
	URL string

	// Path is the absolute filesystem location.
	Path string

	// Size is the file size in bytes.
	Size int64
}

// Inventory walks the cache root and returns an entry per cached file.
// Used at startup to log what the engine will be able to resolve offline.
// A missing root returns an empty inventory, not an error.
func (r *Resolver) Inventory() ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(r.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(r.root, p)
		if relErr != nil {
			return relErr
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}

		entries = append(entries, Entry{
			URL:  urlFromRelPath(rel),
			Path: p,
			Size: info.Size(),
		})
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("taxonomy: walk cache: %w", err)
	}
	return entries, nil
}

// urlFromRelPath reverses the cache layout: scheme/host/path... -> URL.
// Files staged outside the convention come back with an empty URL.
func urlFromRelPath(rel string) string {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[0] + "://" + parts[1] + "/" + strings.Join(parts[2:], "/")
}
