package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Keyer reduces a key value to the canonical string used for storage.
//
// Contract:
// - Determinism: structurally equal keys must produce the same string,
//   regardless of map iteration order.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	Key(key any) (string, error)
}

// CanonicalKeyer uses the canonical JSON text of the key as the storage key.
// The string "user:42" maps to `"user:42"`, a struct to its JSON object.
type CanonicalKeyer struct{}

// Key returns the canonical JSON text of key.
func (CanonicalKeyer) Key(key any) (string, error) {
	canonical, err := canonicalize(key)
	if err != nil {
		return "", &CodecError{Op: "key", Err: err}
	}
	return string(canonical), nil
}

// HashKeyer bounds key length by hashing the canonical text.
// Format: <namespace>:<hash>, where hash is the first 16 hex characters of
// SHA-256(canonical JSON(key)).
type HashKeyer struct {
	Namespace string
}

// Key returns the namespaced hash of key.
func (k HashKeyer) Key(key any) (string, error) {
	canonical, err := canonicalize(key)
	if err != nil {
		return "", &CodecError{Op: "key", Err: err}
	}

	sum := sha256.Sum256(canonical)
	hashStr := hex.EncodeToString(sum[:8])

	if k.Namespace == "" {
		return hashStr, nil
	}
	return k.Namespace + ":" + hashStr, nil
}

// canonicalize produces a deterministic JSON representation of v.
// Generic maps and slices are walked so nested map keys come out sorted.
func canonicalize(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case map[string]any:
		return canonicalizeMap(val)
	case []any:
		return canonicalizeSlice(val)
	default:
		return json.Marshal(v)
	}
}

func canonicalizeMap(m map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := []byte("{")
	for i, k := range keys {
		if i > 0 {
			out = append(out, ',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		valBytes, err := canonicalize(m[k])
		if err != nil {
			return nil, err
		}
		out = append(out, keyBytes...)
		out = append(out, ':')
		out = append(out, valBytes...)
	}
	return append(out, '}'), nil
}

func canonicalizeSlice(s []any) ([]byte, error) {
	out := []byte("[")
	for i, v := range s {
		if i > 0 {
			out = append(out, ',')
		}
		valBytes, err := canonicalize(v)
		if err != nil {
			return nil, err
		}
		out = append(out, valBytes...)
	}
	return append(out, ']'), nil
}

var (
	_ Keyer = CanonicalKeyer{}
	_ Keyer = HashKeyer{}
)
