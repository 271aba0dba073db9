// Package adjust grows or shrinks the variable-length region of a document
// until its compact encoding lands inside a byte-size band.
package adjust

import (
	"fmt"

	"jsonbench/internal/document"
)

// RegionField is the list field of an object that Adjust resizes.
const RegionField = "data"

// DefaultTolerance is the half-width of the acceptance band, as a ratio of
// the target.
const DefaultTolerance = 0.1

// Factory returns one fresh element for the region.
type Factory func() any

// Report describes where Adjust stopped. A result outside the band is not
// an error; InBand tells the caller whether the target was met.
type Report struct {
	Bytes    int
	Elements int
	InBand   bool
	Adjusted bool // false when the document has no region
}

// Band returns the inclusive acceptance range for target and tolerance.
func Band(target int, tolerance float64) (lo, hi float64) {
	return float64(target) * (1 - tolerance), float64(target) * (1 + tolerance)
}

// Adjust appends factory elements to the document's region while it is
// smaller than the band, then removes trailing elements while it is larger
// and more than one element remains. The region is a top-level list or the
// "data" list of an object. A document without a region is returned
// unchanged.
//
// Convergence is single-direction: an element that overshoots the upper
// bound while growing is kept.
func Adjust(doc any, target int, tolerance float64, factory Factory) (any, Report, error) {
	size, err := document.Size(doc)
	if err != nil {
		return doc, Report{}, fmt.Errorf("measure document: %w", err)
	}
	lo, hi := Band(target, tolerance)

	list, set := region(doc)
	if set == nil {
		f := float64(size)
		return doc, Report{Bytes: size, InBand: f >= lo && f <= hi}, nil
	}

	for float64(size) < lo && factory != nil {
		elem := factory()
		n, err := document.Size(elem)
		if err != nil {
			return doc, Report{}, fmt.Errorf("measure element: %w", err)
		}
		if len(list) > 0 {
			size++ // separator
		}
		size += n
		list = append(list, elem)
	}

	for float64(size) > hi && len(list) > 1 {
		last := list[len(list)-1]
		n, err := document.Size(last)
		if err != nil {
			return doc, Report{}, fmt.Errorf("measure element: %w", err)
		}
		size -= n + 1
		list[len(list)-1] = nil
		list = list[:len(list)-1]
	}

	doc = set(list)
	f := float64(size)
	return doc, Report{
		Bytes:    size,
		Elements: len(list),
		InBand:   f >= lo && f <= hi,
		Adjusted: true,
	}, nil
}

// region locates the resizable list and returns a setter that stores the
// resized list back and yields the resulting document.
func region(doc any) ([]any, func([]any) any) {
	switch d := doc.(type) {
	case []any:
		return d, func(l []any) any { return l }
	case *document.Object:
		v, ok := d.Get(RegionField)
		if !ok {
			return nil, nil
		}
		list, ok := v.([]any)
		if !ok {
			return nil, nil
		}
		return list, func(l []any) any {
			d.Set(RegionField, l)
			return d
		}
	}
	return nil, nil
}
