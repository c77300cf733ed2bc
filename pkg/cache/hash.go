package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. File cache entries are named by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Scripts and templates are hashed
// this way, so two documents that decode to the same value share a hash
// whatever their source format. Values that cannot be encoded hash as null.
func HashJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte("null")
	}
	return Hash(data)
}

// hashKey joins a key namespace and the hash of its components, e.g.
// "artifact:<sha256>".
func hashKey(namespace string, parts ...any) string {
	return namespace + ":" + HashJSON(parts)
}
