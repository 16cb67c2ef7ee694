package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bazelbuild/buildtools/build"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/albertocavalcante/go-buri/internal/buildutil"
)

// Decoder turns raw manifest bytes into a BuildFile.
type Decoder interface {
	Decode(path string, data []byte) (*BuildFile, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(path string, data []byte) (*BuildFile, error)

// Decode calls f(path, data).
func (f DecoderFunc) Decode(path string, data []byte) (*BuildFile, error) {
	return f(path, data)
}

// Built-in decoders.
var (
	// TOML decodes [[library]] tables.
	TOML Decoder = DecoderFunc(decodeTOML)

	// Starlark decodes library(...) calls in BUILD / BUILD.bazel files.
	Starlark Decoder = DecoderFunc(decodeStarlark)

	// HCL decodes library "<name>" { ... } blocks.
	HCL Decoder = DecoderFunc(decodeHCL)
)

// DecoderFor selects a decoder from a manifest file name.
func DecoderFor(fileName string) (Decoder, error) {
	base := path.Base(fileName)
	switch {
	case base == "BUILD" || base == "BUILD.bazel" || strings.HasSuffix(base, ".bzl"):
		return Starlark, nil
	case strings.HasSuffix(base, ".toml"):
		return TOML, nil
	case strings.HasSuffix(base, ".hcl"):
		return HCL, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, base)
	}
}

// Decode decodes a manifest file using the decoder for its name.
// Decoding failures are returned as *DecodeError.
func Decode(f *File) (*BuildFile, error) {
	dec, err := DecoderFor(f.Path)
	if err != nil {
		return nil, &DecodeError{Path: f.Path, Err: err}
	}
	bf, err := dec.Decode(f.Path, f.Data)
	if err != nil {
		return nil, &DecodeError{Path: f.Path, Err: err}
	}
	bf.Path = f.Path
	bf.normalize()
	return bf, nil
}

func decodeTOML(_ string, data []byte) (*BuildFile, error) {
	var bf BuildFile
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&bf)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	for i, lib := range bf.Libraries {
		if lib.Name == "" {
			return nil, fmt.Errorf("library #%d: missing name", i+1)
		}
	}
	return &bf, nil
}

const starlarkLibraryRule = "library"

var starlarkAttributes = map[string]bool{
	"name":         true,
	"files":        true,
	"dependencies": true,
	"dependents":   true,
}

func decodeStarlark(filename string, data []byte) (*BuildFile, error) {
	f, err := build.ParseBuild(filename, data)
	if err != nil {
		return nil, err
	}

	bf := &BuildFile{}
	for _, stmt := range f.Stmt {
		call, ok := stmt.(*build.CallExpr)
		if !ok || buildutil.CallName(call) != starlarkLibraryRule {
			continue
		}
		lib, err := starlarkLibrary(call)
		if err != nil {
			start, _ := call.Span()
			return nil, fmt.Errorf("%s:%d: %w", filename, start.Line, err)
		}
		bf.Libraries = append(bf.Libraries, lib)
	}
	return bf, nil
}

func starlarkLibrary(call *build.CallExpr) (Library, error) {
	for _, kw := range buildutil.Keywords(call) {
		if !starlarkAttributes[kw] {
			return Library{}, fmt.Errorf("library: unknown attribute %q", kw)
		}
	}

	name := buildutil.String(call, "name")
	if name == "" {
		return Library{}, errors.New("library without a name")
	}
	lib := Library{Name: name}

	var err error
	if lib.Files, err = buildutil.StringList(call, "files"); err != nil {
		return Library{}, fmt.Errorf("library %q: %w", name, err)
	}
	if lib.Dependencies, err = buildutil.StringList(call, "dependencies"); err != nil {
		return Library{}, fmt.Errorf("library %q: %w", name, err)
	}
	if lib.Dependents, err = buildutil.StringList(call, "dependents"); err != nil {
		return Library{}, fmt.Errorf("library %q: %w", name, err)
	}
	return lib, nil
}

// hclBuildFile represents the top-level structure of a BUILD.hcl file for decoding.
type hclBuildFile struct {
	Libraries []*hclLibrary `hcl:"library,block"`
}

type hclLibrary struct {
	Name         string   `hcl:"name,label"`
	Files        []string `hcl:"files,optional"`
	Dependencies []string `hcl:"dependencies,optional"`
	Dependents   []string `hcl:"dependents,optional"`
}

func decodeHCL(filename string, data []byte) (*BuildFile, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	var parsed hclBuildFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, diags
	}

	bf := &BuildFile{Libraries: make([]Library, 0, len(parsed.Libraries))}
	for _, lib := range parsed.Libraries {
		bf.Libraries = append(bf.Libraries, Library{
			Name:         lib.Name,
			Files:        lib.Files,
			Dependencies: lib.Dependencies,
			Dependents:   lib.Dependents,
		})
	}
	return bf, nil
}
