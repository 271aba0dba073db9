// Package templates generates the document shapes the corpus is built from.
// Every generator is a pure function of the Source it is handed: two
// Sources with the same seed produce identical documents when the same
// generators are called in the same order.
package templates

import (
	"jsonbench/internal/document"
)

const (
	createdAt   = "2024-01-15T10:30:00Z"
	updatedAt   = "2024-12-25T15:45:00Z"
	envelopeAt  = "2024-12-25T12:00:00Z"
	feedCreated = "Mon Dec 25 12:00:00 +0000 2024"
)

// FlatRecord models a typical API entity: mixed scalars, a short list of
// strings and a nested metadata object.
func FlatRecord(src *Source) any {
	tags := make([]any, 3)
	for i := range tags {
		tags[i] = src.RandomString(5)
	}
	return document.NewObject().
		Set("id", src.RandomInt(1, 1_000_000)).
		Set("name", src.RandomString(20)).
		Set("email", src.RandomString(8)+"@example.com").
		Set("active", src.RandomBool()).
		Set("score", src.RandomFloat(0, 100, 2)).
		Set("tags", tags).
		Set("metadata", document.NewObject().
			Set("created", createdAt).
			Set("updated", updatedAt).
			Set("version", src.RandomInt(1, 10)))
}

// Envelope wraps count flat records in a paginated API response. The "data"
// list is the region the size adjuster grows and shrinks.
func Envelope(src *Source, count int) any {
	data := make([]any, count)
	for i := range data {
		data[i] = FlatRecord(src)
	}
	return document.NewObject().
		Set("status", "success").
		Set("code", int64(200)).
		Set("message", "Data retrieved successfully").
		Set("pagination", document.NewObject().
			Set("page", int64(1)).
			Set("per_page", int64(count)).
			Set("total", int64(count)*10).
			Set("total_pages", int64(10))).
		Set("data", data).
		Set("meta", document.NewObject().
			Set("request_id", src.RandomUUID()).
			Set("timestamp", envelopeAt).
			Set("processing_time_ms", src.RandomInt(10, 500)))
}

// FeedItem is one status of a social timeline.
func FeedItem(src *Source) any {
	return document.NewObject().
		Set("id", src.RandomInt(1e17, 1e18)).
		Set("id_str", formatInt(src.RandomInt(1e17, 1e18))).
		Set("text", src.RandomString(280)).
		Set("truncated", false).
		Set("user", document.NewObject().
			Set("id", src.RandomInt(1e7, 1e8)).
			Set("name", src.RandomString(20)).
			Set("screen_name", src.RandomString(15)).
			Set("followers_count", src.RandomInt(0, 1_000_000)).
			Set("verified", src.RandomBool())).
		Set("retweet_count", src.RandomInt(0, 10_000)).
		Set("favorite_count", src.RandomInt(0, 50_000)).
		Set("created_at", feedCreated)
}

// Feed is a timeline of count richly nested statuses. It is benchmarked as
// a fixed document and never size-adjusted.
func Feed(src *Source, count int) any {
	statuses := make([]any, count)
	for i := range statuses {
		statuses[i] = FeedItem(src)
	}
	return document.NewObject().Set("statuses", statuses)
}
