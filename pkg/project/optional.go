package project

import (
	"bytes"
	"encoding/json"
)

// Optional is a string that may be absent on the wire.
// A missing key and an explicit null are both absent.
type Optional struct {
	Value string
	Valid bool
}

// Some returns a present Optional holding v.
func Some(v string) Optional {
	return Optional{Value: v, Valid: true}
}

// None returns an absent Optional.
func None() Optional {
	return Optional{}
}

// Get returns the value and whether it is present.
func (o Optional) Get() (string, bool) {
	return o.Value, o.Valid
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*o = Some(s)
	return nil
}

// MarshalJSON implements json.Marshaler. Absent values encode as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
