package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Layout configs and geometries
// encode deterministically, so equal values hash equally.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// stageKey returns "<stage>:<hash of parts>".
func stageKey(stage string, parts ...any) string {
	h, err := HashJSON(parts)
	if err != nil {
		h = Hash(fmt.Append(nil, parts...))
	}
	return stage + ":" + h
}
