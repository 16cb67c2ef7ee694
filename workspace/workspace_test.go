package workspace

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fsys, name, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return fsys
}

func TestFind(t *testing.T) {
	fsys := newFs(t, map[string]string{
		"/repo/WORKSPACE.toml":          `name = "repo"`,
		"/repo/nested/WORKSPACE.toml":   `name = "nested"`,
		"/repo/a/b/c/BUILD.toml":        "",
		"/repo/nested/x/y/BUILD.toml":   "",
		"/elsewhere/project/BUILD.toml": "",
	})

	tests := []struct {
		start   string
		want    string
		wantErr error
	}{
		{start: "/repo", want: "/repo"},
		{start: "/repo/a/b/c", want: "/repo"},
		{start: "/repo/nested/x/y", want: "/repo/nested"},
		{start: "/repo/a/b/c/", want: "/repo"},
		{start: "/elsewhere/project", wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got, err := Find(fsys, filepath.FromSlash(tt.start))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Find() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("Find() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fsys := newFs(t, map[string]string{
		"/repo/WORKSPACE.toml":  "name = \"repo\"\nburi_version = \"0.3.0\"\n",
		"/empty/WORKSPACE.toml": "",
		"/bad/WORKSPACE.toml":   "name = ",
	})

	ws, err := Load(fsys, "/repo")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ws.Name != "repo" || ws.BuriVersion != "0.3.0" || ws.Root != "/repo" {
		t.Errorf("Load() = %+v", ws)
	}

	ws, err = Load(fsys, "/empty")
	if err != nil {
		t.Fatalf("Load(empty) error = %v", err)
	}
	if ws.Name != "" {
		t.Errorf("Name = %q, want empty", ws.Name)
	}

	if _, err := Load(fsys, "/bad"); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("Load(bad) error = %v, want decode error", err)
	}
	if _, err := Load(fsys, "/missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
}

func TestOpen(t *testing.T) {
	fsys := newFs(t, map[string]string{
		"/repo/WORKSPACE.toml": `name = "repo"`,
	})

	ws, err := Open(fsys, "/repo/src/pkg")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if ws.Name != "repo" {
		t.Errorf("Name = %q, want %q", ws.Name, "repo")
	}
}

func TestInit(t *testing.T) {
	fsys := afero.NewMemMapFs()

	ws, err := Init(fsys, "/proj", "demo")
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if ws.BuriVersion != DefaultVersion {
		t.Errorf("BuriVersion = %q, want %q", ws.BuriVersion, DefaultVersion)
	}

	loaded, err := Load(fsys, "/proj")
	if err != nil {
		t.Fatalf("Load() after Init error = %v", err)
	}
	if loaded.Name != "demo" || loaded.BuriVersion != DefaultVersion {
		t.Errorf("Load() = %+v", loaded)
	}

	if _, err := Init(fsys, "/proj", "again"); !errors.Is(err, ErrExists) {
		t.Errorf("second Init() error = %v, want ErrExists", err)
	}
}
