// Package datasource locates and connects to the train SQLite database.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/njohns-tmpl/TrainTracker/internal/store"
)

const (
	defaultDir = ".traintracker"
	defaultDB  = ".traintracker/trains.db"
)

// Discover finds the train database path.
// Priority: TRAINTRACKER_DB env var > .traintracker/trains.db in CWD > walk up parents.
func Discover() (string, error) {
	if env := os.Getenv("TRAINTRACKER_DB"); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env, nil
		}
		return "", fmt.Errorf("TRAINTRACKER_DB=%q: %w", env, os.ErrNotExist)
	}

	// Check CWD first.
	if _, err := os.Stat(defaultDB); err == nil {
		abs, err := filepath.Abs(defaultDB)
		if err != nil {
			return "", fmt.Errorf("resolve absolute path for %s: %w", defaultDB, err)
		}
		return abs, nil
	}

	// Walk up parent directories.
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, defaultDB)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no train database found (looked for %s)", defaultDB)
}

// Open discovers and opens the train store.
func Open() (*store.Store, string, error) {
	path, err := Discover()
	if err != nil {
		return nil, "", err
	}
	s, err := store.New(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	return s, path, nil
}

// Create opens the store at path, or at the conventional CWD location when
// path is empty, creating the parent directory if needed. Feed imports use
// this so a fresh checkout can receive its first delivery.
func Create(path string) (*store.Store, string, error) {
	if path == "" {
		if found, err := Discover(); err == nil {
			path = found
		} else {
			path = defaultDB
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, "", fmt.Errorf("create %s: %w", dir, err)
		}
	}
	s, err := store.New(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	return s, path, nil
}
