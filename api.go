// Package goburi resolves build orders for targets declared in
// per-directory manifests.
//
// # Overview
//
// The module provides three layers:
//
//   - label: parses target labels such as "foo/bar:baz", "foo/bar" and "foo:..."
//   - manifest: reads and decodes each directory's BUILD.toml (or BUILD,
//     BUILD.bazel, BUILD.hcl) into libraries with files and dependencies
//   - goburi: walks dependencies from a root target and returns every
//     reachable target once, dependencies before dependents
//
// # Quick Start
//
//	src := manifest.NewFSSource(afero.NewOsFs(), "/path/to/workspace")
//	order, err := goburi.ResolveLabel(ctx, "app/server", src)
//	if err != nil {
//	    return err
//	}
//	for _, tf := range order {
//	    fmt.Println(tf.Target, tf.Files)
//	}
//
// # Errors
//
// Failures are fatal to a resolution and are reported as typed errors that
// match a sentinel with errors.Is:
//
//	var cycle *goburi.CycleError
//	if errors.As(err, &cycle) {
//	    fmt.Println(strings.Join(cycle.Path, " -> "))
//	}
//	if errors.Is(err, goburi.ErrManifestUnavailable) { ... }
//
// # Thread Safety
//
// A Resolver may be shared between goroutines. manifest.Cache lets
// concurrent resolutions share decoded manifests.
package goburi

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/albertocavalcante/go-buri/graph"
	"github.com/albertocavalcante/go-buri/label"
	"github.com/albertocavalcante/go-buri/manifest"
)

// Resolve returns the build order for root using manifests from src.
func Resolve(ctx context.Context, root label.Target, src manifest.Source, opts ...Option) ([]TargetFiles, error) {
	r, err := NewResolver(src, opts...)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, root)
}

// ResolveLabel parses rawLabel and returns its build order.
func ResolveLabel(ctx context.Context, rawLabel string, src manifest.Source, opts ...Option) ([]TargetFiles, error) {
	root, err := label.Parse(rawLabel)
	if err != nil {
		return nil, fmt.Errorf("parse root label: %w", err)
	}
	return Resolve(ctx, root, src, opts...)
}

// ResolveAll resolves several roots concurrently, sharing one manifest cache
// unless a loader or cache is configured. Each resolution has its own
// traversal state, so results[i] equals Resolve(ctx, roots[i], ...).
// The first failure cancels the remaining resolutions.
func ResolveAll(ctx context.Context, roots []label.Target, src manifest.Source, opts ...Option) ([][]TargetFiles, error) {
	cfg, err := newResolverConfig(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.loader == nil && cfg.cache == nil && src != nil {
		opts = append(opts[:len(opts):len(opts)], WithCache(manifest.NewCache(manifest.NewLoader(src))))
	}

	r, err := NewResolver(src, opts...)
	if err != nil {
		return nil, err
	}
	return r.ResolveAll(ctx, roots)
}

// ResolveAll resolves several roots concurrently with this resolver.
func (r *Resolver) ResolveAll(ctx context.Context, roots []label.Target) ([][]TargetFiles, error) {
	results := make([][]TargetFiles, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	limit := r.cfg.concurrency
	if limit == 0 {
		limit = defaultMaxConcurrency
	}
	g.SetLimit(limit)

	for i, root := range roots {
		g.Go(func() error {
			order, err := r.Resolve(gctx, root)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", root, err)
			}
			results[i] = order
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BuildGraph turns a build order into a queryable graph rooted at root.
func BuildGraph(root label.Target, order []TargetFiles) *graph.Graph {
	nodes := make([]graph.SimpleNode, len(order))
	for i, tf := range order {
		nodes[i] = graph.SimpleNode{
			Target:       tf.Target,
			Files:        tf.Files,
			Dependencies: tf.Dependencies,
		}
	}
	return graph.Build(root, nodes)
}
