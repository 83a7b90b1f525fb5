package main

import (
	"math/rand"
	"net/http"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//
// shared test fixtures
//

func testClient() *clientContext {
	p := portalContext{
		randomSource: rand.New(rand.NewSource(1)),
		translations: portalTranslations{bundle: i18n.NewBundle(language.English)},
	}

	c := clientContext{}
	c.init(&p, nil)

	return &c
}

func testQuery(keyword string, page int) *searchQuery {
	return &searchQuery{Keyword: keyword, Page: page, Filters: map[string]string{}}
}

func testCatalogueConfig() *portalConfigEngine {
	return &portalConfigEngine{
		Host:          "http://catalogue.example.com",
		SearchPath:    "/search",
		PageLimit:     50,
		PageSize:      20,
		FacetLimit:    3,
		BranchLimit:   5,
		HighlightTag:  "em",
		NotFoundCode:  90,
		Formats:       map[string]string{"book": "BOOK", "journal": "JOURNAL"},
		DatasourceTag: "central catalogue",
	}
}

func testCatalogueEngine() *catalogueEngine {
	return newCatalogueEngine(testCatalogueConfig(), http.DefaultClient, map[string]string{}, "/api/search/facets")
}

func testDiscoveryConfig() *portalConfigEngine {
	return &portalConfigEngine{
		Host:         "http://discovery.example.com",
		SearchPath:   "/rest/search",
		SuggestPath:  "/rest/suggest",
		PageLimit:    50,
		PageSize:     20,
		FacetLimit:   3,
		NotFoundCode: 60,
		Formats:      map[string]string{"book": "bk"},
		Auth: &portalConfigAuth{
			Scheme:  "SSWS",
			ID:      "portal",
			Secret:  "sekrit",
			Version: "1.0",
		},
		DatasourceTag: "discovery service",
	}
}

func testDiscoveryEngine() *discoveryEngine {
	return newDiscoveryEngine(testDiscoveryConfig(), http.DefaultClient, map[string]string{}, "/api/search/facets")
}
