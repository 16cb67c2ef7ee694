// Package manifest reads the per-directory build manifests that declare
// libraries and their dependencies.
//
// A manifest lives next to the sources it describes. Three encodings are
// understood, selected by file name:
//
//	BUILD.toml           [[library]] tables (default)
//	BUILD, BUILD.bazel   Starlark library(...) calls
//	BUILD.hcl            library "<name>" { ... } blocks
//
// The pieces compose as Source -> Loader -> (optional) Cache:
//
//	src := manifest.NewFSSource(afero.NewOsFs(), workspaceRoot)
//	loader := manifest.NewCache(manifest.NewLoader(src))
//	bf, err := loader.Load(ctx, "foo/bar")
//
// Missing manifests fail with [ErrNotFound]; undecodable ones with
// [ErrMalformed]. Dependency labels are not validated here.
package manifest
