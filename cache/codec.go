package cache

import "encoding/json"

// Codec serializes values for storage.
//
// Contract:
// - Decode(Encode(v)) must reproduce v for every supported type.
// - Concurrency: implementations must be safe for concurrent use.
type Codec interface {
	Encode(v any) (string, error)
	Decode(data string, v any) error
}

// JSONCodec stores values as JSON text.
type JSONCodec struct{}

// Encode returns the JSON text of v.
func (JSONCodec) Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", &CodecError{Op: "encode", Err: err}
	}
	return string(data), nil
}

// Decode parses data into v. A payload of the wrong shape for v fails.
func (JSONCodec) Decode(data string, v any) error {
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return &CodecError{Op: "decode", Err: err}
	}
	return nil
}

var _ Codec = JSONCodec{}
