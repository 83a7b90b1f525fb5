package main

import (
	"strings"
	"testing"
)

//
// facet assembly tests
//

func TestFacetsNilWhenEmpty(t *testing.T) {
	if groups := buildFacetGroups(testClient(), testQuery("whales", 1), nil, 3, nil, "/facets"); groups != nil {
		t.Fatalf("Expected nil for no groups, got %+v\n", groups)
	}

	// a group with no values contributes nothing
	empty := []rawFacetGroup{{label: "Format", total: 0}}
	if groups := buildFacetGroups(testClient(), testQuery("whales", 1), empty, 3, nil, "/facets"); groups != nil {
		t.Fatalf("Expected nil for valueless groups, got %+v\n", groups)
	}
}

func TestFacetTruncationAndMore(t *testing.T) {
	raw := []rawFacetGroup{{
		label: "Subject",
		total: 25,
		values: []rawFacetValue{
			{label: "Whaling", count: 10},
			{label: "Sea stories", count: 6},
			{label: "Ships", count: 5},
			{label: "Ocean travel", count: 3},
			{label: "Ahab, Captain", count: 1},
		},
	}}

	groups := buildFacetGroups(testClient(), testQuery("whales", 1), raw, 3, nil, "/api/search/facets")

	if len(groups) != 1 || len(groups[0].Facets) != 3 {
		t.Fatalf("Expected 3 displayed facets, got %+v\n", groups)
	}

	if groups[0].MoreCount != 2 {
		t.Fatalf("Expected 2 more facets, got %d\n", groups[0].MoreCount)
	}

	if strings.HasPrefix(groups[0].MoreURL, "/api/search/facets?") == false {
		t.Fatalf("Expected more url against the facets endpoint, got [%s]\n", groups[0].MoreURL)
	}

	if groups[0].TotalCount != 25 {
		t.Fatalf("Expected engine-reported total, got %d\n", groups[0].TotalCount)
	}
}

func TestFacetFilterURLs(t *testing.T) {
	raw := []rawFacetGroup{{
		label:  "Subject",
		values: []rawFacetValue{{label: "Whaling", count: 10}},
	}}

	q := testQuery("whales", 4)

	groups := buildFacetGroups(testClient(), q, raw, 3, nil, "/facets")

	u := groups[0].Facets[0].URL
	if strings.Contains(u, "subject=Whaling") == false || strings.Contains(u, "page=1") == false {
		t.Fatalf("Expected filter url keyed by lowercased label with page reset, got [%s]\n", u)
	}
}

func TestFacetTotalFallsBackToSum(t *testing.T) {
	raw := []rawFacetGroup{{
		label: "Format",
		values: []rawFacetValue{
			{label: "Book", count: 6},
			{label: "Journal", count: 3},
		},
	}}

	groups := buildFacetGroups(testClient(), testQuery("whales", 1), raw, 5, nil, "/facets")

	if groups[0].TotalCount != 9 {
		t.Fatalf("Expected summed total, got %d\n", groups[0].TotalCount)
	}

	// nothing truncated, so no more link
	if groups[0].MoreCount != 0 || groups[0].MoreURL != "" {
		t.Fatalf("Expected no more link, got %+v\n", groups[0])
	}
}

func TestFacetLabelLocalization(t *testing.T) {
	raw := []rawFacetGroup{{
		label:  "ContentType",
		values: []rawFacetValue{{label: "Book", count: 6}},
	}}

	xids := map[string]string{"contenttype": "FacetContentType"}

	groups := buildFacetGroups(testClient(), testQuery("whales", 1), raw, 3, xids, "/facets")

	// the test bundle has no messages, so localization falls back to the id;
	// what matters is that the xid mapping was consulted and the raw label kept
	if groups[0].Label != "FacetContentType" || groups[0].RawLabel != "contenttype" {
		t.Fatalf("Expected mapped label and raw label, got %+v\n", groups[0])
	}
}
