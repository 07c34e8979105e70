// Package registry pulls base images from container registries into a local
// archive store.
//
// The store is digest-addressed: each pulled image lands in one file named
// after its manifest digest, and a reference whose digest is already present
// is served from disk. The build package consumes the resolved archive path
// and uses the digest as part of the dependency-layer cache key.
package registry
