package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Optional is a request field that tells apart "absent" from "explicit null".
// Set is true whenever the key appeared in the JSON body; Value is nil when
// that key carried null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a set Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a set Optional holding null
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only called for keys present in the body.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// IsNull reports whether the key was present and carried null
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Value == nil
}

// Any returns the held value for validation, or nil when absent or null
func (o Optional[T]) Any() any {
	if o.Value == nil {
		return nil
	}
	return *o.Value
}

// Date is a calendar date accepted as YYYY-MM-DD or RFC 3339
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// ParseDate parses a date-only or RFC 3339 timestamp
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// UnmarshalJSON treats an empty string as the zero date
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Ptr returns nil for the zero date
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
