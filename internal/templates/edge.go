package templates

import (
	"fmt"

	"jsonbench/internal/document"
)

// The shapes below exercise codec edge behaviour rather than throughput.
// They are generated once each at fixed parameters.

// UnicodeHeavy is count records of n-rune strings with multi-byte runes.
func UnicodeHeavy(src *Source, count, n int) []any {
	out := make([]any, count)
	for i := range out {
		out[i] = document.NewObject().Set("text", src.RandomUnicodeString(n))
	}
	return out
}

// EscapeHeavy repeats three records full of escape sequences.
func EscapeHeavy(repeat int) []any {
	out := make([]any, 0, 3*repeat)
	for i := 0; i < repeat; i++ {
		out = append(out,
			document.NewObject().Set("text", "Hello\nWorld\t\"quoted\"\r\nEnd\\slash"),
			document.NewObject().Set("path", `C:\Users\test\file.json`),
			document.NewObject().Set("html", "<script>alert('xss')</script>"),
		)
	}
	return out
}

// DeepArrays repeats [[[[[[1,2,3]]]]]] count times.
func DeepArrays(count int) []any {
	out := make([]any, count)
	for i := range out {
		var v any = []any{int64(1), int64(2), int64(3)}
		for d := 0; d < 5; d++ {
			v = []any{v}
		}
		out[i] = v
	}
	return out
}

// ManyKeys is a single object with n distinct keys key_0..key_{n-1}.
func ManyKeys(n int) any {
	obj := document.NewObject()
	for i := 0; i < n; i++ {
		obj.Set(fmt.Sprintf("key_%d", i), int64(i))
	}
	return obj
}

// LargeIntegers holds integers past 2^53, where float64 decoding loses
// precision.
func LargeIntegers(count int) []any {
	out := make([]any, count)
	for i := range out {
		out[i] = document.NewObject().
			Set("big", int64(9007199254740992+i)).
			Set("small", int64(i))
	}
	return out
}

// PreciseFloats holds floats that need all 17 significant digits.
func PreciseFloats(count int) []any {
	out := make([]any, count)
	for i := range out {
		out[i] = document.NewObject().Set("value", 3.141592653589793*float64(i+1))
	}
	return out
}
