package main

import (
	"math"
	"net/url"
	"strconv"
)

// the canonical query model.  one searchQuery is parsed per request; engine
// pipelines receive their own clone so URL building in one pipeline never
// mutates the query the other pipeline reads.

// recognized inbound keys; anything else in the request map is ignored
var recognizedQueryKeys = []string{
	"id",
	"q",
	"format",
	"branch",
	"page",
	"author",
	"language",
	"mdtags",
	"person",
	"region",
	"series",
	"subject",
	"timeperiod",
	"uniformtitle",
}

// keys that become engine filters rather than first-class query fields
var filterQueryKeys = []string{
	"author",
	"language",
	"mdtags",
	"person",
	"region",
	"series",
	"subject",
	"timeperiod",
	"uniformtitle",
}

type searchQuery struct {
	ID      string
	Keyword string
	Format  string
	Branch  string
	Page    int
	Filters map[string]string
}

func parseQuery(raw map[string]string) *searchQuery {
	q := searchQuery{
		Page:    1,
		Filters: make(map[string]string),
	}

	for _, key := range recognizedQueryKeys {
		val := raw[key]
		if val == "" {
			continue
		}

		switch key {
		case "id":
			q.ID = val
		case "q":
			q.Keyword = val
		case "format":
			q.Format = val
		case "branch":
			q.Branch = val
		case "page":
			q.Page = parsePageNumber(val)
		default:
			q.Filters[key] = val
		}
	}

	return &q
}

// parsePageNumber ceils fractional page values to integers; anything
// unparseable or below 1 becomes page 1.
func parsePageNumber(val string) int {
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || f < 1 {
		return 1
	}

	return int(math.Ceil(f))
}

func (q *searchQuery) isDetailRequest() bool {
	return q.ID != ""
}

func (q *searchQuery) clone() *searchQuery {
	c := *q

	c.Filters = make(map[string]string)
	for key, val := range q.Filters {
		c.Filters[key] = val
	}

	return &c
}

func (q *searchQuery) values() url.Values {
	vals := url.Values{}

	if q.ID != "" {
		vals.Set("id", q.ID)
	}

	if q.Keyword != "" {
		vals.Set("q", q.Keyword)
	}

	if q.Format != "" {
		vals.Set("format", q.Format)
	}

	if q.Branch != "" {
		vals.Set("branch", q.Branch)
	}

	vals.Set("page", strconv.Itoa(q.Page))

	for key, val := range q.Filters {
		vals.Set(key, val)
	}

	return vals
}

// queryString serializes the query with keys sorted lexicographically, so
// the same logical query always produces an identical string.
func (q *searchQuery) queryString() string {
	// url.Values.Encode sorts by key
	return q.values().Encode()
}

func (q *searchQuery) urlWithPage(page int) string {
	c := q.clone()
	c.Page = page

	return "?" + c.queryString()
}

// urlWithFilter merges a facet key/value into the query; selecting a facet
// always returns to page 1.
func (q *searchQuery) urlWithFilter(key string, value string) string {
	c := q.clone()
	c.Filters[key] = value
	c.Page = 1

	return "?" + c.queryString()
}

func (q *searchQuery) urlWithKeyword(term string) string {
	c := q.clone()
	c.Keyword = term
	c.Page = 1

	return "?" + c.queryString()
}
