// Package codec translates between search parameters and the wire format of
// the search service. It holds no state and performs no I/O.
package codec

import (
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"

	"desearch/internal/domain"
)

// SearchPath is the endpoint path appended to the configured base URL
const SearchPath = "/api/search"

// Encode serializes a query and its filters into a query string.
// Keys always appear in the order q, difficulty, tags; difficulty and tags are
// omitted when unset or empty.
func Encode(query string, difficulty domain.Difficulty, tags []string) string {
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(url.QueryEscape(strings.TrimSpace(query)))

	if difficulty.IsSet() {
		b.WriteString("&difficulty=")
		b.WriteString(url.QueryEscape(string(difficulty)))
	}

	if joined := joinTags(tags); joined != "" {
		b.WriteString("&tags=")
		b.WriteString(url.QueryEscape(joined))
	}

	return b.String()
}

// EncodeWithLimit is Encode plus an optional result limit. A limit of zero or
// less leaves the server default in place.
func EncodeWithLimit(query string, difficulty domain.Difficulty, tags []string, limit int) string {
	encoded := Encode(query, difficulty, tags)
	if limit > 0 {
		encoded += "&limit=" + strconv.Itoa(limit)
	}
	return encoded
}

// RequestURL joins the base URL, the search path and an encoded query string
func RequestURL(baseURL, encoded string) string {
	return strings.TrimRight(baseURL, "/") + SearchPath + "?" + encoded
}

// joinTags sorts and comma-joins tags so that equal sets encode identically
func joinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		cleaned = append(cleaned, tag)
	}
	sort.Strings(cleaned)
	return strings.Join(cleaned, ",")
}

// Decode extracts the hit list from a response payload.
// It never fails: a missing, null or non-array "hits" field, or a payload
// that is not valid JSON, yields an empty slice. Hits that are not objects are
// skipped and fields with an unexpected type are treated as absent.
func Decode(raw []byte) []domain.Result {
	results := make([]domain.Result, 0)
	if len(raw) == 0 || !json.Valid(raw) {
		return results
	}

	hits, dataType, _, err := jsonparser.Get(raw, "hits")
	if err != nil || dataType != jsonparser.Array {
		return results
	}

	_, _ = jsonparser.ArrayEach(hits, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if err != nil || dataType != jsonparser.Object {
			return
		}
		results = append(results, decodeHit(value))
	})

	return results
}

func decodeHit(hit []byte) domain.Result {
	r := domain.Result{
		ID:         scalarField(hit, "id"),
		Title:      stringField(hit, "title"),
		Platform:   stringField(hit, "platform"),
		Difficulty: stringField(hit, "difficulty"),
		URL:        stringField(hit, "url"),
		Tags:       tagsField(hit),
	}
	if value, dataType, _, err := jsonparser.Get(hit, "description"); err == nil && dataType == jsonparser.String {
		if s, err := jsonparser.ParseString(value); err == nil {
			r.Description = &s
		}
	}
	return r
}

func stringField(hit []byte, key string) string {
	value, dataType, _, err := jsonparser.Get(hit, key)
	if err != nil || dataType != jsonparser.String {
		return ""
	}
	s, err := jsonparser.ParseString(value)
	if err != nil {
		return ""
	}
	return s
}

// scalarField accepts strings and numbers; numeric ids keep their literal text
func scalarField(hit []byte, key string) string {
	value, dataType, _, err := jsonparser.Get(hit, key)
	if err != nil {
		return ""
	}
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return ""
		}
		return s
	case jsonparser.Number:
		return string(value)
	default:
		return ""
	}
}

func tagsField(hit []byte) []string {
	value, dataType, _, err := jsonparser.Get(hit, "tags")
	if err != nil || dataType != jsonparser.Array {
		return nil
	}
	tags := make([]string, 0)
	_, _ = jsonparser.ArrayEach(value, func(tag []byte, dataType jsonparser.ValueType, _ int, err error) {
		if err != nil || dataType != jsonparser.String {
			return
		}
		if s, err := jsonparser.ParseString(tag); err == nil {
			tags = append(tags, s)
		}
	})
	return tags
}
