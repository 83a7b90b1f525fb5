package main

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// the catalogue engine: an XML search API with coded subfields, inline
// highlight markup, and embedded error payloads inside 200 responses.

type catalogueEngine struct {
	cfg        *portalConfigEngine
	httpClient *http.Client
	facetXIDs  map[string]string
	facetsPath string
	stripper   *strings.Replacer
}

func newCatalogueEngine(cfg *portalConfigEngine, client *http.Client, facetXIDs map[string]string, facetsPath string) *catalogueEngine {
	tag := cfg.HighlightTag
	if tag == "" {
		tag = "em"
	}

	return &catalogueEngine{
		cfg:        cfg,
		httpClient: client,
		facetXIDs:  facetXIDs,
		facetsPath: facetsPath,
		stripper:   strings.NewReplacer(fmt.Sprintf("<%s>", tag), "", fmt.Sprintf("</%s>", tag), ""),
	}
}

func (e *catalogueEngine) name() string {
	return engineNameCatalogue
}

func (e *catalogueEngine) client() *http.Client {
	return e.httpClient
}

func (e *catalogueEngine) config() *portalConfigEngine {
	return e.cfg
}

func (e *catalogueEngine) buildSearchRequest(q *searchQuery, selected bool) (*engineRequest, error) {
	params := url.Values{}

	if q.isDetailRequest() == true {
		params.Set("id", q.ID)

		return &engineRequest{
			url:      e.cfg.Host + e.cfg.SearchPath + "?" + params.Encode(),
			headers:  map[string]string{"Accept": "application/xml"},
			isDetail: true,
		}, nil
	}

	params.Set("query", q.Keyword)
	params.Set("page", strconv.Itoa(clampValue(q.Page, 1, e.cfg.PageLimit)))
	params.Set("pageSize", strconv.Itoa(e.cfg.PageSize))

	// canonical formats pass through the engine's vocabulary table;
	// "all" and unmapped formats are simply not constrained
	if q.Format != "" && q.Format != "all" {
		if token, ok := e.cfg.Formats[q.Format]; ok == true {
			params.Set("format", token)
		}
	}

	for key, val := range q.Filters {
		// engine-specific refinements only apply when this engine was chosen
		if selected == false && sliceContainsString(filterQueryKeys, key) == true {
			continue
		}

		params.Set("f."+key, val)
	}

	if selected == true && q.Branch != "" {
		params.Set("branch", q.Branch)
	}

	return &engineRequest{
		url:     e.cfg.Host + e.cfg.SearchPath + "?" + params.Encode(),
		headers: map[string]string{"Accept": "application/xml"},
	}, nil
}

func (e *catalogueEngine) parseResponse(status int, body []byte, isDetail bool) (*engineParsed, error) {
	if status != http.StatusOK {
		return nil, requestError("catalogue returned http status %d", status)
	}

	// inline match highlighting is markup we never want; strip it before
	// decoding so it cannot corrupt element boundaries
	stripped := e.stripper.Replace(string(body))

	var resp catalogueResponse
	if err := xml.Unmarshal([]byte(stripped), &resp); err != nil {
		return nil, parseError("unable to parse catalogue response: %s", err.Error())
	}

	if resp.Error != nil {
		if resp.Error.Code == e.cfg.NotFoundCode {
			return nil, notFoundError("catalogue reported no matches (code %d)", resp.Error.Code)
		}

		return nil, engineError(resp.Error.Code, resp.Error.Message)
	}

	parsed := engineParsed{payload: &resp}

	if resp.Pager != nil {
		parsed.rowCount = resp.Pager.TotalResults
		parsed.pageCount = resp.Pager.TotalPages
	} else {
		parsed.rowCount = len(resp.Records)
	}

	return &parsed, nil
}

func (e *catalogueEngine) buildRecords(c *clientContext, p *engineParsed) ([]Resource, []error) {
	resp := p.payload.(*catalogueResponse)

	var records []Resource
	var errs []error

	for i := range resp.Records {
		rec, err := catalogueMapRecord(e.cfg, &resp.Records[i])
		if err != nil {
			errs = append(errs, err)
			continue
		}

		records = append(records, *rec)
	}

	return records, errs
}

func (e *catalogueEngine) buildFacets(c *clientContext, q *searchQuery, p *engineParsed) []FacetGroup {
	resp := p.payload.(*catalogueResponse)

	var groups []rawFacetGroup

	for _, block := range resp.Facets {
		group := rawFacetGroup{label: block.Label, total: block.Total}

		for _, val := range block.Values {
			group.values = append(group.values, rawFacetValue{label: val.Label, count: val.Count})
		}

		groups = append(groups, group)
	}

	return buildFacetGroups(c, q, groups, e.cfg.FacetLimit, e.facetXIDs, e.facetsPath)
}

// buildSuggestions derives alternatives from the same response; the
// catalogue engine sends its "did you mean" terms inline.
func (e *catalogueEngine) buildSuggestions(ctx context.Context, c *clientContext, q *searchQuery, p *engineParsed) *SuggestionSet {
	resp := p.payload.(*catalogueResponse)

	terms := nonemptyValues(resp.DidYouMean)
	if terms == nil {
		return nil
	}

	set := SuggestionSet{OriginalQuery: q.Keyword}

	for _, term := range terms {
		set.Suggestions = append(set.Suggestions, Suggestion{
			Label: term,
			URL:   q.urlWithKeyword(term),
		})
	}

	return &set
}
