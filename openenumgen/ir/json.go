package ir

import "encoding/json"

// JSON serialization support for IR types.
// All descriptors include a "kind" field for type discrimination; the
// manifest written next to generated code is a JSON-encoded Schema.

// MarshalJSON implements json.Marshaler for OpenEnumDescriptor.
func (d *OpenEnumDescriptor) MarshalJSON() ([]byte, error) {
	type Alias OpenEnumDescriptor
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		*Alias
	}{
		Kind:  "open_enum",
		Alias: (*Alias)(d),
	})
}

// MarshalJSON implements json.Marshaler for ReferenceDescriptor.
func (d *ReferenceDescriptor) MarshalJSON() ([]byte, error) {
	type Alias ReferenceDescriptor
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		*Alias
	}{
		Kind:  "reference",
		Alias: (*Alias)(d),
	})
}

// MarshalJSON implements json.Marshaler for PrimitiveDescriptor.
func (d *PrimitiveDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind          string `json:"kind"`
		PrimitiveKind string `json:"primitiveKind"`
		BitSize       int    `json:"bitSize,omitempty"`
	}{
		Kind:          "primitive",
		PrimitiveKind: d.PrimitiveKind.String(),
		BitSize:       d.BitSize,
	})
}
