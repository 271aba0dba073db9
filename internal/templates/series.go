package templates

import (
	"strconv"

	"jsonbench/internal/document"
)

const seriesEpoch = 1704067200

// NumberPoint is one sensor reading; i offsets its timestamp.
func NumberPoint(src *Source, i int) any {
	values := make([]any, 5)
	for j := range values {
		values[j] = src.RandomFloat(-100, 100, 4)
	}
	return document.NewObject().
		Set("timestamp", int64(seriesEpoch+i)).
		Set("values", values).
		Set("flags", src.RandomInt(0, 255))
}

// NumberSeries is a list of count consecutive sensor readings.
func NumberSeries(src *Source, count int) []any {
	points := make([]any, count)
	for i := range points {
		points[i] = NumberPoint(src, i)
	}
	return points
}

// TextRecord is dominated by long string fields.
func TextRecord(src *Source) any {
	tags := make([]any, 5)
	for i := range tags {
		tags[i] = src.RandomString(10)
	}
	return document.NewObject().
		Set("id", formatInt(src.RandomInt(100_000, 999_999))).
		Set("title", src.RandomString(50)).
		Set("description", src.RandomString(200)).
		Set("content", src.RandomString(500)).
		Set("author", src.RandomString(30)).
		Set("tags", tags)
}

// StringHeavy is a list of count text records.
func StringHeavy(src *Source, count int) []any {
	records := make([]any, count)
	for i := range records {
		records[i] = TextRecord(src)
	}
	return records
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
