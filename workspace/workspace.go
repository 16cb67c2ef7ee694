// Package workspace locates and reads the WORKSPACE.toml file that marks
// the root of a source tree.
package workspace

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// FileName is the name of the workspace marker file.
const FileName = "WORKSPACE.toml"

// DefaultVersion is written to new workspaces.
const DefaultVersion = "nightly"

var (
	// ErrNotFound indicates no WORKSPACE.toml in the start directory or any parent.
	ErrNotFound = errors.New("workspace not found")

	// ErrExists indicates Init was called where a workspace already exists.
	ErrExists = errors.New("workspace already exists")
)

// Workspace is the decoded WORKSPACE.toml.
type Workspace struct {
	// Name is the project name. Optional.
	Name string `toml:"name,omitempty"`

	// BuriVersion is the tool version the workspace was created with. Optional.
	BuriVersion string `toml:"buri_version,omitempty"`

	// Root is the directory containing WORKSPACE.toml.
	Root string `toml:"-"`
}

// Find walks up from start to the nearest directory containing WORKSPACE.toml.
func Find(fsys afero.Fs, start string) (string, error) {
	current := filepath.Clean(start)
	for {
		ok, err := afero.Exists(fsys, filepath.Join(current, FileName))
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", filepath.Join(current, FileName), err)
		}
		if ok {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w: searched from %s", ErrNotFound, start)
		}
		current = parent
	}
}

// Load reads WORKSPACE.toml from root.
func Load(fsys afero.Fs, root string) (*Workspace, error) {
	path := filepath.Join(root, FileName)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var ws Workspace
	if _, err := toml.Decode(string(data), &ws); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	ws.Root = root
	return &ws, nil
}

// Open finds the workspace enclosing start and loads it.
func Open(fsys afero.Fs, start string) (*Workspace, error) {
	root, err := Find(fsys, start)
	if err != nil {
		return nil, err
	}
	return Load(fsys, root)
}

// Init writes a new WORKSPACE.toml in dir.
func Init(fsys afero.Fs, dir, name string) (*Workspace, error) {
	path := filepath.Join(dir, FileName)
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	}

	ws := &Workspace{Name: name, BuriVersion: DefaultVersion, Root: dir}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(ws); err != nil {
		return nil, fmt.Errorf("encode workspace: %w", err)
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	if err := afero.WriteFile(fsys, path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return ws, nil
}
