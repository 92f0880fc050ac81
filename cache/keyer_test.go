package cache

import (
	"errors"
	"strings"
	"testing"
)

type accountKey struct {
	Chain   string `json:"chain"`
	Address string `json:"address"`
}

func TestCanonicalKeyer_StructuralEquality(t *testing.T) {
	keyer := CanonicalKeyer{}

	a, err := keyer.Key(accountKey{Chain: "solana", Address: "HLmq"})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	b, err := keyer.Key(&accountKey{Chain: "solana", Address: "HLmq"})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if a != b {
		t.Errorf("value and pointer keys differ:\n  a=%s\n  b=%s", a, b)
	}
	if a != `{"chain":"solana","address":"HLmq"}` {
		t.Errorf("Key() = %s", a)
	}
}

func TestCanonicalKeyer_StringKey(t *testing.T) {
	got, err := CanonicalKeyer{}.Key("user:42")
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if got != `"user:42"` {
		t.Errorf("Key(%q) = %s, want %s", "user:42", got, `"user:42"`)
	}
}

func TestCanonicalKeyer_DeterministicForMaps(t *testing.T) {
	keyer := CanonicalKeyer{}

	inputs := []map[string]any{
		{"b": 2, "a": 1, "c": map[string]any{"y": 1, "x": 2}},
		{"a": 1, "c": map[string]any{"x": 2, "y": 1}, "b": 2},
		{"c": map[string]any{"y": 1, "x": 2}, "b": 2, "a": 1},
	}

	var first string
	for i, in := range inputs {
		got, err := keyer.Key(in)
		if err != nil {
			t.Fatalf("Key() error = %v", err)
		}
		if i == 0 {
			first = got
			continue
		}
		if got != first {
			t.Errorf("input %d: key %s, want %s", i, got, first)
		}
	}
	if first != `{"a":1,"b":2,"c":{"x":2,"y":1}}` {
		t.Errorf("canonical form = %s", first)
	}
}

func TestCanonicalKeyer_ArrayOrderPreserved(t *testing.T) {
	keyer := CanonicalKeyer{}

	a, _ := keyer.Key([]any{1, 2, 3})
	b, _ := keyer.Key([]any{3, 2, 1})
	if a == b {
		t.Errorf("different array order should give different keys: %s", a)
	}
}

func TestCanonicalKeyer_Nil(t *testing.T) {
	got, err := CanonicalKeyer{}.Key(nil)
	if err != nil || got != "null" {
		t.Errorf("Key(nil) = %q, %v; want null, nil", got, err)
	}
}

func TestCanonicalKeyer_Unserializable(t *testing.T) {
	tests := []struct {
		name string
		key  any
	}{
		{"channel", make(chan int)},
		{"func", func() {}},
		{"nested func", map[string]any{"f": func() {}}},
		{"slice with channel", []any{1, make(chan int)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CanonicalKeyer{}.Key(tt.key)
			if !errors.Is(err, ErrCodec) {
				t.Errorf("Key() error = %v, want ErrCodec", err)
			}
			var ce *CodecError
			if !errors.As(err, &ce) || ce.Op != "key" {
				t.Errorf("Key() error = %#v, want *CodecError with Op=key", err)
			}
		})
	}
}

func TestHashKeyer(t *testing.T) {
	keyer := HashKeyer{Namespace: "prices"}

	a, err := keyer.Key(map[string]any{"mint": "So111", "vs": "usd"})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	b, _ := keyer.Key(map[string]any{"vs": "usd", "mint": "So111"})
	if a != b {
		t.Errorf("hash keys differ for equal maps: %s vs %s", a, b)
	}

	if !strings.HasPrefix(a, "prices:") {
		t.Errorf("Key() = %s, want prices: prefix", a)
	}
	if hash := strings.TrimPrefix(a, "prices:"); len(hash) != 16 {
		t.Errorf("hash part = %q, want 16 hex chars", hash)
	}

	bare, _ := HashKeyer{}.Key("x")
	if len(bare) != 16 {
		t.Errorf("unnamespaced key = %q, want 16 hex chars", bare)
	}

	if _, err := keyer.Key(make(chan int)); !errors.Is(err, ErrCodec) {
		t.Errorf("Key(chan) error = %v, want ErrCodec", err)
	}
}
