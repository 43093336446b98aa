// Package render is the reconciling half of the dashboard: it diffs derived
// views against an explicit previous-value cache and emits updates only for
// fields whose value actually changed, so an unchanged refresh causes no
// visual motion. The rendering surface is an interface; the same engine
// drives the terminal surface and a recording surface in tests.
package render

import (
	"fmt"
	"strings"
)

// Direction indicates which way a changed numeric value moved.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionNone Direction = "none"
)

// FieldKey identifies one observable field within a scope. Tracking per
// (scope, field) keeps, e.g., average-return-for-BTC separate from
// average-return-for-all.
type FieldKey struct {
	Scope string
	Field string
}

// FieldUpdate is one reconciled field value. Changed is true only when the
// value differs from the previous render of the same key; the first
// observation of a key renders without a change flag.
type FieldUpdate struct {
	Key       FieldKey
	Text      string
	Class     string
	Numeric   bool
	Value     float64
	Old       float64
	Changed   bool
	Direction Direction
}

// Cache is the explicit previous-value store keyed by (scope, field). It
// replaces any notion of reading the rendered output back as state.
type Cache struct {
	nums    map[FieldKey]float64
	texts   map[FieldKey]string
	rowKeys map[string]bool
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{
		nums:    make(map[FieldKey]float64),
		texts:   make(map[FieldKey]string),
		rowKeys: make(map[string]bool),
	}
}

// DiffNumber reconciles a numeric field. The returned update carries the old
// value for counter interpolation and a direction for the change arrow.
func (c *Cache) DiffNumber(scope, field string, value float64, text, class string) FieldUpdate {
	key := FieldKey{Scope: scope, Field: field}
	u := FieldUpdate{
		Key:       key,
		Text:      text,
		Class:     class,
		Numeric:   true,
		Value:     value,
		Old:       value,
		Direction: DirectionNone,
	}
	if old, seen := c.nums[key]; seen && old != value {
		u.Old = old
		u.Changed = true
		if value > old {
			u.Direction = DirectionUp
		} else {
			u.Direction = DirectionDown
		}
	}
	c.nums[key] = value
	return u
}

// DiffText reconciles a string or badge field. Changed text swaps
// immediately, without interpolation or arrows.
func (c *Cache) DiffText(scope, field, text, class string) FieldUpdate {
	key := FieldKey{Scope: scope, Field: field}
	u := FieldUpdate{Key: key, Text: text, Class: class, Direction: DirectionNone}
	if old, seen := c.texts[key]; seen && old != text {
		u.Changed = true
	}
	c.texts[key] = text
	return u
}

// CounterSteps interpolates a numeric counter from old to new over the given
// number of frames. The first step is the old value's successor and the last
// step lands exactly on the new value.
func CounterSteps(old, new float64, frames int) []float64 {
	if frames < 1 {
		frames = 1
	}
	steps := make([]float64, frames)
	for i := 1; i <= frames; i++ {
		steps[i-1] = old + (new-old)*float64(i)/float64(frames)
	}
	steps[frames-1] = new
	return steps
}

// FormatPercent renders a percentage with an explicit sign, e.g. "+3.67%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// FormatPrice renders a price with thousands-appropriate precision.
func FormatPrice(v float64) string {
	if v >= 1000 {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.4f", v)
}

// ClassFor maps a signed value onto its display class.
func ClassFor(v float64) string {
	switch {
	case v > 0:
		return "positive"
	case v < 0:
		return "negative"
	default:
		return "neutral"
	}
}

// ClassForFreshness maps a freshness label onto its display class.
func ClassForFreshness(freshness string) string {
	switch strings.ToLower(freshness) {
	case "fresh":
		return "positive"
	case "stale":
		return "warning"
	default:
		return "negative"
	}
}
