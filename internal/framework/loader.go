// Package framework loads framework resource packages from a local cache
// directory. Cache entries are gzip-compressed JSON descriptors keyed by
// package id, installed once and reused across runs.
package framework

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/apkforge/restable/internal/logging"
	"github.com/apkforge/restable/internal/respkg"
	"github.com/apkforge/restable/internal/restable"
)

// ErrNotFound is returned when no cache entry exists for a package id.
var ErrNotFound = errors.New("framework package not installed")

// Descriptor is the serialized form of a resource package in the cache.
type Descriptor struct {
	ID    uint8            `json:"id"`
	Name  string           `json:"name"`
	Types []TypeDescriptor `json:"types"`
}

// TypeDescriptor is one resource type within a Descriptor.
type TypeDescriptor struct {
	ID      uint8             `json:"id"`
	Name    string            `json:"name"`
	Entries []EntryDescriptor `json:"entries"`
}

// EntryDescriptor is one resource entry within a type.
type EntryDescriptor struct {
	ID    uint16 `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Loader implements restable.FrameworkLoader against a cache directory.
// An optional tag selects between alternative framework versions installed
// for the same id.
type Loader struct {
	dir string
	tag string
	log *logging.Logger
}

// NewLoader creates a loader for the given cache directory. The tag may be
// empty.
func NewLoader(dir, tag string) *Loader {
	return &Loader{dir: dir, tag: tag, log: logging.NewNop()}
}

// SetLogger attaches a logger for install and load events.
func (l *Loader) SetLogger(log *logging.Logger) {
	if log != nil {
		l.log = log
	}
}

// LoadPackage loads the framework package for id from the cache and
// registers it into the table as a framework package.
func (l *Loader) LoadPackage(t *restable.Table, id uint8) (restable.Package, error) {
	path := l.entryPath(id)
	desc, err := readDescriptor(path)
	if err != nil {
		return nil, err
	}
	if desc.ID != id {
		return nil, fmt.Errorf("corrupt cache entry %s: descriptor id=%d", path, desc.ID)
	}

	pkg, err := build(desc)
	if err != nil {
		return nil, fmt.Errorf("corrupt cache entry %s: %w", path, err)
	}
	if err := t.AddPackage(pkg, false); err != nil {
		return nil, err
	}

	l.log.Info("framework package loaded",
		zap.Uint8("id", id),
		zap.String("name", pkg.Name()),
		zap.String("path", path),
	)
	return pkg, nil
}

// LoadFile loads a descriptor from an arbitrary path and registers it as a
// main or framework package. Used for the application's own packages, which
// do not live in the cache.
func (l *Loader) LoadFile(t *restable.Table, path string, main bool) (restable.Package, error) {
	desc, err := readDescriptor(path)
	if err != nil {
		return nil, err
	}
	pkg, err := build(desc)
	if err != nil {
		return nil, fmt.Errorf("corrupt descriptor %s: %w", path, err)
	}
	if err := t.AddPackage(pkg, main); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Install writes a descriptor into the cache, creating the directory if
// needed. An existing entry for the same id and tag is replaced.
func (l *Loader) Install(desc *Descriptor) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create framework directory: %w", err)
	}

	data, err := sonic.Marshal(desc)
	if err != nil {
		return fmt.Errorf("failed to marshal descriptor: %w", err)
	}

	path := l.entryPath(desc.ID)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache entry: %w", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	if _, err := gz.Write(data); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finalize cache entry: %w", err)
	}

	l.log.Info("framework package installed",
		zap.Uint8("id", desc.ID),
		zap.String("name", desc.Name),
		zap.String("path", path),
	)
	return nil
}

// entryPath maps a package id (and the loader's tag) to its cache file.
func (l *Loader) entryPath(id uint8) string {
	name := strconv.Itoa(int(id))
	if l.tag != "" {
		name += "-" + l.tag
	}
	return filepath.Join(l.dir, name+".json.gz")
}

func readDescriptor(path string) (*Descriptor, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("corrupt cache entry %s: %w", path, err)
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("corrupt cache entry %s: %w", path, err)
	}

	var desc Descriptor
	if err := sonic.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("corrupt cache entry %s: %w", path, err)
	}
	return &desc, nil
}

func build(desc *Descriptor) (*respkg.Package, error) {
	pkg := respkg.New(desc.ID, desc.Name)
	for _, typ := range desc.Types {
		for _, entry := range typ.Entries {
			if err := pkg.AddSpec(typ.ID, typ.Name, entry.ID, entry.Name, respkg.Value(entry.Value)); err != nil {
				return nil, err
			}
		}
	}
	return pkg, nil
}
