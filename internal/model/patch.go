package model

import (
	"bytes"
	"encoding/json"
)

// Patch is an update field that tells apart an absent key, an explicit null
// and a value. Absent keys never reach UnmarshalJSON, so Present stays false.
type Patch[T any] struct {
	Present bool
	Null    bool
	Value   T
}

func Set[T any](v T) Patch[T] {
	return Patch[T]{Present: true, Value: v}
}

func Null[T any]() Patch[T] {
	return Patch[T]{Present: true, Null: true}
}

func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	p.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		p.Null = true
		return nil
	}
	return json.Unmarshal(data, &p.Value)
}

// MergeOr keeps cur when the patch is absent, null or the zero value.
func MergeOr[T comparable](cur T, p Patch[T]) T {
	var zero T
	if !p.Present || p.Null || p.Value == zero {
		return cur
	}
	return p.Value
}

// MergeDefined keeps cur when absent, clears on null, sets otherwise.
func MergeDefined[T any](cur *T, p Patch[T]) *T {
	if !p.Present {
		return cur
	}
	if p.Null {
		return nil
	}
	v := p.Value
	return &v
}

// MergeValue keeps cur when absent, resets to the zero value on null.
func MergeValue[T any](cur T, p Patch[T]) T {
	if !p.Present {
		return cur
	}
	if p.Null {
		var zero T
		return zero
	}
	return p.Value
}
