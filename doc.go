// Package cask provides the pointer and ownership-graph layer of a tagged
// value serialization framework.
//
// The library saves and reconstructs values reached through unique, shared,
// and weak ownership edges, preserving aliasing identity across arbitrary
// object graphs (cycles included) and supporting types that cannot be built
// through an ordinary zero-value construction.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	cask/                Root package with the Writer and Reader channel interfaces
//	├── handle/          Owned, Shared, and Weak ownership handle types
//	├── ptrcodec/        Ownership codecs, identity registry, deferred construction
//	├── typereg/         Open type table for polymorphic pointer dispatch
//	├── stream/          Tagged little-endian binary channel implementation
//	├── errors/          Structured error types for debugging
//	└── cmd/inspect/     Archive inspector CLI
//
// # Quick Start
//
// Save and load a shared graph:
//
//	var buf bytes.Buffer
//	s := ptrcodec.NewSaver(stream.NewWriter(&buf))
//
//	n := handle.NewShared(&Node{Name: "root"})
//	err := ptrcodec.SaveShared(s, n, saveNode)
//
//	l := ptrcodec.NewLoader(stream.NewReader(&buf))
//	defer l.Close()
//	out, err := ptrcodec.LoadShared(l, loadNode)
//
// Two edges that shared one object before saving share one reconstructed
// object after loading; the stream carries the pointee exactly once.
//
// # Ownership Kinds
//
//   - Owned: exclusive nullable ownership, no identity tracking
//   - Shared: reference-counted ownership with per-pass slot identity
//   - Weak: non-owning observer, encoded as a momentary shared alias
//
// # Identity Model
//
// Shared identity exists only on the wire and in a pass-scoped registry,
// never in the value itself. Each save or load pass owns exactly one
// registry; two passes never interfere.
//
// # Thread Safety
//
// A Saver or Loader performs one single-threaded, depth-first pass and is
// NOT safe for concurrent use. Handle types are likewise unsynchronized;
// confine a graph to one goroutine while serializing it.
package cask
