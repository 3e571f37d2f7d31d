// Package fingerprint computes order-preserving structural hashes over the
// printed form of a sequence of expressions, used by the Path Explorer to
// recognize a path condition it has already seen.
package fingerprint

import "github.com/cespare/xxhash"

// separator is written between each part so that ["ab", "c"] and ["a",
// "bc"] do not collide.
const separator = byte('\x1f')

// Strings returns a 64-bit fingerprint of parts, sensitive to both content
// and order. Equal slices (same elements, same order) always fingerprint
// identically; this is the only guarantee callers may rely on — xxhash is
// non-cryptographic and collisions, while astronomically unlikely for the
// small path conditions this package is sized for, are not impossible.
func Strings(parts []string) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.WriteString(p)
		_, _ = d.Write([]byte{separator})
	}
	return d.Sum64()
}
