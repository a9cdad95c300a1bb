package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Value is one ledger entry. Boolean objectives hold flags, counter and
// numeric objectives hold non-negative numbers.
type Value struct {
	isBool bool
	flag   bool
	num    float64
}

func BoolValue(b bool) Value {
	return Value{isBool: true, flag: b}
}

func NumberValue(n float64) Value {
	return Value{num: n}
}

// StoredValue rebuilds a Value from its column representation.
func StoredValue(tracking TrackingType, f float64) Value {
	if tracking == TrackingBoolean {
		return BoolValue(f != 0)
	}
	return NumberValue(f)
}

func (v Value) IsBool() bool { return v.isBool }

// Float is the column representation: 1/0 for flags.
func (v Value) Float() float64 {
	if v.isBool {
		if v.flag {
			return 1
		}
		return 0
	}
	return v.num
}

// Done reports whether the entry counts as a completed day.
func (v Value) Done() bool {
	if v.isBool {
		return v.flag
	}
	return v.num > 0
}

func (v Value) String() string {
	if v.isBool {
		return strconv.FormatBool(v.flag)
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isBool {
		return json.Marshal(v.flag)
	}
	return json.Marshal(v.num)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		*v = BoolValue(true)
		return nil
	case "false":
		*v = BoolValue(false)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("ledger value must be a boolean or a number, got %s", data)
	}
	*v = NumberValue(n)
	return nil
}

// CheckFor validates the value against a tracking type.
func (v Value) CheckFor(tracking TrackingType) error {
	if tracking == TrackingBoolean {
		if !v.isBool {
			return errors.New("boolean objectives only accept true or false")
		}
		return nil
	}
	if v.isBool {
		return fmt.Errorf("%s objectives only accept numbers", tracking)
	}
	if v.num < 0 || math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return fmt.Errorf("%s objectives only accept non-negative numbers", tracking)
	}
	return nil
}

// Ledger maps a calendar day to its progress value.
type Ledger map[Date]Value

// Validate checks every key is a canonical date and every value fits tracking.
func (l Ledger) Validate(tracking TrackingType) error {
	for d, v := range l {
		if !d.Valid() {
			return fmt.Errorf("invalid ledger date %q: expected YYYY-MM-DD", d)
		}
		if err := v.CheckFor(tracking); err != nil {
			return fmt.Errorf("%s: %w", d, err)
		}
	}
	return nil
}

// Dates returns the ledger keys in ascending order.
func (l Ledger) Dates() []Date {
	return sortedDates(l)
}

func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for d, v := range l {
		out[d] = v
	}
	return out
}

// CommentLedger maps a calendar day to a free-text note.
type CommentLedger map[Date]string

func (c CommentLedger) Validate() error {
	for d := range c {
		if !d.Valid() {
			return fmt.Errorf("invalid comment date %q: expected YYYY-MM-DD", d)
		}
	}
	return nil
}

func sortedDates[V any](m map[Date]V) []Date {
	dates := make([]Date, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}
