package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Digest returns the hex SHA-256 of an uploaded file. The digest is the
// idempotency key for upload audit rows.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Registry remembers digests seen within one ingest batch so the same file
// attached twice is processed once.
type Registry struct {
	mu   sync.Mutex
	seen map[string]string
}

func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]string)}
}

// Record registers a digest under the given file name. It returns the name
// of the first file that carried the digest and false when the digest was
// already present.
func (r *Registry) Record(digest, fileName string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if first, ok := r.seen[digest]; ok {
		return first, false
	}
	r.seen[digest] = fileName
	return fileName, true
}
