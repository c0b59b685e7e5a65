package types

import (
	"bytes"
	"encoding/gob"
)

// Encode and Decode are the store's wire format for persisted records.
// There is no protoc toolchain available and no schema-less Go struct
// serializer on hand, so the standard library's gob fills that slot (see
// DESIGN.md).
func Encode(v interface{}) []byte {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		panic(err) // data already corrupted
	}
	return buf.Bytes()
}

// Decode reverses Encode into v, which must be a pointer to the original type.
func Decode(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
