package goburi

import (
	"context"
	"log/slog"
	"slices"

	"github.com/albertocavalcante/go-buri/label"
	"github.com/albertocavalcante/go-buri/manifest"
)

// Resolver computes build orders from per-directory manifests.
//
// Resolution is a depth-first walk from the root target. Each target's
// manifest is loaded, its library located by name, and its dependencies
// visited in declaration order; a target is emitted once all of its
// dependencies have been. A target reached again after it was emitted is
// skipped, so diamonds appear once. A target reached while it is still
// being expanded is a cycle.
//
// The walk keeps its own stack instead of recursing, so chain depth is
// bounded by memory rather than goroutine stack size.
//
// A Resolver is immutable and safe for concurrent use as long as its
// loader is.
type Resolver struct {
	loader manifest.Loader
	cfg    *resolverConfig
	log    *slog.Logger
}

// NewResolver creates a resolver reading manifests from src.
// src may be nil when WithLoader or WithCache is given.
func NewResolver(src manifest.Source, opts ...Option) (*Resolver, error) {
	cfg, err := newResolverConfig(opts...)
	if err != nil {
		return nil, err
	}
	loader, err := cfg.manifestLoader(src)
	if err != nil {
		return nil, err
	}
	return &Resolver{loader: loader, cfg: cfg, log: cfg.log()}, nil
}

// frame is a target being expanded.
type frame struct {
	target label.Target
	key    string
	lib    *manifest.Library
	deps   []label.Target
	next   int
}

// traversal holds the state of one Resolve call.
type traversal struct {
	r         *Resolver
	ctx       context.Context
	manifests map[string]*manifest.BuildFile
	resolved  map[string]bool
	onStack   map[string]int
	stack     []*frame
	order     []TargetFiles
	expanded  int
}

// Resolve returns the build order for root: every target reachable from
// root exactly once, each after all of its dependencies, root last.
//
// Any failure aborts the resolution and no partial order is returned.
func (r *Resolver) Resolve(ctx context.Context, root label.Target) ([]TargetFiles, error) {
	log := r.log

	if root.IsRecursive() {
		return nil, &UnsupportedTargetError{Target: root.String()}
	}

	t := &traversal{
		r:         r,
		ctx:       ctx,
		manifests: make(map[string]*manifest.BuildFile),
		resolved:  make(map[string]bool),
		onStack:   make(map[string]int),
	}

	log.Debug("resolving", "root", root.String())
	if err := t.run(root); err != nil {
		log.Debug("resolution failed", "root", root.String(), "error", err)
		return nil, err
	}
	log.Debug("resolution finished",
		"root", root.String(),
		"targets", len(t.order),
		"manifests", len(t.manifests))
	return t.order, nil
}

func (t *traversal) run(root label.Target) error {
	if err := t.visit(root); err != nil {
		return err
	}

	for len(t.stack) > 0 {
		top := t.stack[len(t.stack)-1]

		if top.next < len(top.lib.Dependencies) {
			raw := top.lib.Dependencies[top.next]
			top.next++

			dep, err := label.Parse(raw)
			if err != nil {
				return &DependencyLabelError{Target: top.key, Label: raw, Err: err}
			}
			if dep.IsRecursive() {
				return &UnsupportedTargetError{Target: raw, DependencyOf: top.key}
			}
			top.deps = append(top.deps, dep)
			if err := t.visit(dep); err != nil {
				return err
			}
			continue
		}

		t.pop(top)
	}
	return nil
}

// visit pushes target unless it is already resolved; reaching a target that
// is still on the stack is a cycle.
func (t *traversal) visit(target label.Target) error {
	key := target.Key()
	if t.resolved[key] {
		return nil
	}
	if idx, ok := t.onStack[key]; ok {
		path := make([]string, 0, len(t.stack)-idx+1)
		for _, f := range t.stack[idx:] {
			path = append(path, f.key)
		}
		return &CycleError{Target: key, Path: append(path, key)}
	}
	return t.push(target, key)
}

func (t *traversal) push(target label.Target, key string) error {
	if err := t.ctx.Err(); err != nil {
		return err
	}
	if limit := t.r.cfg.maxTargets; limit > 0 && t.expanded >= limit {
		return &TooManyTargetsError{Limit: limit}
	}
	t.expanded++

	bf, err := t.loadManifest(target, key)
	if err != nil {
		return err
	}
	lib, ok := bf.Library(target.Name())
	if !ok {
		return &TargetNotFoundError{Target: key, Manifest: bf.Path, Available: bf.Names()}
	}

	t.stack = append(t.stack, &frame{
		target: target,
		key:    key,
		lib:    lib,
		deps:   make([]label.Target, 0, len(lib.Dependencies)),
	})
	t.onStack[key] = len(t.stack) - 1

	t.r.log.Debug("expanding target", "target", key, "dependencies", len(lib.Dependencies))
	t.r.cfg.progress(ProgressEvent{Type: ProgressTargetExpanded, Target: key, Depth: len(t.stack)})
	return nil
}

func (t *traversal) pop(top *frame) {
	t.stack = t.stack[:len(t.stack)-1]
	delete(t.onStack, top.key)
	t.resolved[top.key] = true

	t.order = append(t.order, TargetFiles{
		Target:       top.target,
		Files:        slices.Clone(top.lib.Files),
		Dependencies: top.deps,
	})
	t.r.cfg.progress(ProgressEvent{Type: ProgressTargetResolved, Target: top.key, Depth: len(t.stack) + 1})
}

// loadManifest returns the manifest of target's directory, loading it at most
// once per resolution.
func (t *traversal) loadManifest(target label.Target, key string) (*manifest.BuildFile, error) {
	dir := target.Dir()
	if bf, ok := t.manifests[dir]; ok {
		return bf, nil
	}

	bf, err := t.r.loader.Load(t.ctx, dir)
	if err != nil {
		if ctxErr := t.ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ManifestError{Target: key, Dir: dir, Err: err}
	}
	t.manifests[dir] = bf

	t.r.log.Debug("manifest loaded", "dir", dir, "path", bf.Path, "libraries", len(bf.Libraries))
	t.r.cfg.progress(ProgressEvent{Type: ProgressManifestLoaded, Manifest: bf.Path, Depth: len(t.stack)})
	return bf, nil
}
