package build

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const fingerprintLen = 10

// Fingerprints returns an AssetURL resolver that appends a content hash to
// every asset found in reg. Unknown assets are returned unchanged.
func Fingerprints(reg Registry) func(string) string {
	cache := make(map[string]string)

	return func(p string) string {
		if u, ok := cache[p]; ok {
			return u
		}

		u := p
		if page, ok := reg.Lookup(strings.TrimPrefix(p, "/")); ok && !page.IsHTML() {
			if body, err := page.Render(Context{}); err == nil {
				sum := blake2b.Sum256([]byte(body))
				u = p + "?v=" + hex.EncodeToString(sum[:])[:fingerprintLen]
			}
		}

		cache[p] = u
		return u
	}
}
