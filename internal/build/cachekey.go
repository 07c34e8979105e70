package build

import (
	"strings"

	"github.com/opencontainers/go-digest"
)

// Separator between cache key fields. A newline cannot appear inside a
// digest, a package name, or an install command line, so fields cannot run
// together and produce colliding keys.
const keySep = "\n"

// Computes the content digest identifying a package-and-dependency layer.
//
// The key covers everything that influences the layer's contents: the base
// image digest, the rendered system package command (which embeds the
// ordered package list), the raw bytes of the dependency manifest, and the
// install command. Reordering packages changes the key; a byte-for-byte
// identical manifest with a changed source tree does not.
func cacheKey(base digest.Digest, packagesCmd string, requirements []byte, install string) digest.Digest {
	var b strings.Builder
	b.WriteString(base.String())
	b.WriteString(keySep)
	b.WriteString(packagesCmd)
	b.WriteString(keySep)
	b.Write(requirements)
	b.WriteString(keySep)
	b.WriteString(install)

	return digest.FromString(b.String())
}

// Returns the containerd tag a cached layer is committed under.
func cacheTag(key digest.Digest) string {
	return "cache/" + key.Encoded() + ":latest"
}
