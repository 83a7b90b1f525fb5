package main

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"strings"
	"testing"
)

//
// discovery engine tests
//

func TestDiscoverySignature(t *testing.T) {
	auth := &portalConfigAuth{Scheme: "SSWS", ID: "portal", Secret: "sekrit", Version: "1.0"}

	ts := "Mon, 02 Jan 2006 15:04:05 GMT"
	host := "discovery.example.com"
	query := "page=1&pageSize=20&q=whales"

	got := discoverySignature(auth, discoveryAccept, ts, host, query)

	// the signed material is the newline-terminated header block followed
	// by the sorted query string and a final newline
	mac := hmac.New(sha1.New, []byte("sekrit"))
	mac.Write([]byte(discoveryAccept + "\n" + ts + "\n" + host + "\n" + "1.0" + "\n" + query + "\n"))
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if got != expected {
		t.Fatalf("Expected digest [%s], got [%s]\n", expected, got)
	}

	// same inputs always produce the same digest
	if again := discoverySignature(auth, discoveryAccept, ts, host, query); again != got {
		t.Fatalf("Expected reproducible digest, got [%s] then [%s]\n", got, again)
	}

	// any change to the query changes the digest
	if other := discoverySignature(auth, discoveryAccept, ts, host, "page=2&pageSize=20&q=whales"); other == got {
		t.Fatalf("Expected different digest for different query\n")
	}
}

func TestDiscoveryRequestHeaders(t *testing.T) {
	e := testDiscoveryEngine()

	req, err := e.buildSearchRequest(testQuery("whales", 1), false)
	if err != nil {
		t.Fatalf("Expected success, got error: %s\n", err.Error())
	}

	authz := req.headers["Authorization"]
	if strings.HasPrefix(authz, "SSWS portal;") == false {
		t.Fatalf("Expected authorization header with scheme and id, got [%s]\n", authz)
	}

	if req.headers["Accept"] != discoveryAccept {
		t.Fatalf("Expected accept header, got [%s]\n", req.headers["Accept"])
	}

	// timestamps are GMT http dates
	if strings.HasSuffix(req.headers["X-Request-Date"], "GMT") == false {
		t.Fatalf("Expected GMT request date, got [%s]\n", req.headers["X-Request-Date"])
	}

	if req.headers["X-Api-Version"] != "1.0" {
		t.Fatalf("Expected api version header, got [%s]\n", req.headers["X-Api-Version"])
	}
}

func TestDiscoveryUnauthorizedIsEmpty(t *testing.T) {
	e := testDiscoveryEngine()

	_, err := e.parseResponse(401, []byte(`{"error":"unauthorized"}`), false)
	if err == nil {
		t.Fatalf("Expected a not-found signal for http 401\n")
	}

	if errorIsKind(err, errKindNotFound) == false {
		t.Fatalf("Expected 401 treated as empty, got: %s\n", err.Error())
	}
}

func TestDiscoveryServerErrorIsFailure(t *testing.T) {
	e := testDiscoveryEngine()

	_, err := e.parseResponse(500, []byte(`oops`), false)
	if errorIsKind(err, errKindRequest) == false {
		t.Fatalf("Expected request error for http 500, got: %v\n", err)
	}
}

func TestDiscoveryFacetConversion(t *testing.T) {
	e := testDiscoveryEngine()

	body := `{
		"recordCount": 2,
		"pageCount": 1,
		"records": [],
		"facets": {
			"ContentType": {"count": 9, "buckets": [{"val": "Book", "count": 6}, {"val": "Journal", "count": 3}]},
			"engineVersion": "7.2"
		}
	}`

	parsed, err := e.parseResponse(200, []byte(body), false)
	if err != nil {
		t.Fatalf("Expected success, got error: %s\n", err.Error())
	}

	groups := e.buildFacets(testClient(), testQuery("whales", 1), parsed)
	if len(groups) != 1 {
		t.Fatalf("Expected 1 facet group (bookkeeping entries ignored), got %d\n", len(groups))
	}

	if groups[0].RawLabel != "contenttype" || groups[0].TotalCount != 9 {
		t.Fatalf("Expected lowercased label and total, got %+v\n", groups[0])
	}

	if len(groups[0].Facets) != 2 || groups[0].Facets[0].Count != 6 {
		t.Fatalf("Expected facet values, got %+v\n", groups[0].Facets)
	}
}

func TestDiscoveryValueNormalization(t *testing.T) {
	rec := discoveryRecord{
		ID: "disc-001",
		Display: []discoveryItem{
			{Name: "title", Values: "Moby Dick"},
			{Name: "subject", Values: []interface{}{"Whaling", "Sea stories"}},
		},
	}

	if vals := rec.getValues("title"); len(vals) != 1 || vals[0] != "Moby Dick" {
		t.Fatalf("Expected single string wrapped in a slice, got %v\n", vals)
	}

	if vals := rec.getValues("subject"); len(vals) != 2 {
		t.Fatalf("Expected array values flattened, got %v\n", vals)
	}

	if vals := rec.getValues("missing"); vals != nil {
		t.Fatalf("Expected nil for a missing field, got %v\n", vals)
	}
}

func TestDiscoveryRecordMapping(t *testing.T) {
	rec := discoveryRecord{
		ID: "disc-002",
		Display: []discoveryItem{
			{Name: "title", Values: "Moby Dick"},
			{Name: "subtitle", Values: "or, The Whale"},
			{Name: "author", Values: []interface{}{"Melville, Herman"}},
			{Name: "publicationYear", Values: "1851"},
			{Name: "issn", Values: "1234-5678"},
		},
	}

	r, err := discoveryMapRecord(testDiscoveryConfig(), &rec)
	if err != nil {
		t.Fatalf("Expected success, got error: %s\n", err.Error())
	}

	if r.ID != "discovery:disc-002" {
		t.Fatalf("Expected namespaced id, got [%s]\n", r.ID)
	}

	if r.Titles[0] != "Moby Dick or, The Whale" {
		t.Fatalf("Expected title with subtitle, got [%s]\n", r.Titles[0])
	}

	if len(r.Authors) != 1 || r.Authors[0].Type != "personal" {
		t.Fatalf("Expected one personal author, got %+v\n", r.Authors)
	}

	if r.Published == nil || r.Published.Date.Label != "1851" {
		t.Fatalf("Expected publication year label, got %+v\n", r.Published)
	}

	if r.Identifiers.ISSN != "1234-5678" {
		t.Fatalf("Expected issn, got [%s]\n", r.Identifiers.ISSN)
	}
}
