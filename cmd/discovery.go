package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
)

// the discovery engine: a JSON search API that authenticates every request
// with an HMAC-SHA1 digest over the request headers and query string.

const discoveryAccept = "application/json"

type discoveryEngine struct {
	cfg        *portalConfigEngine
	httpClient *http.Client
	facetXIDs  map[string]string
	facetsPath string
	signHost   string // host portion of the engine url, as covered by the signature
}

func newDiscoveryEngine(cfg *portalConfigEngine, client *http.Client, facetXIDs map[string]string, facetsPath string) *discoveryEngine {
	e := discoveryEngine{
		cfg:        cfg,
		httpClient: client,
		facetXIDs:  facetXIDs,
		facetsPath: facetsPath,
	}

	if u, err := url.Parse(cfg.Host); err == nil {
		e.signHost = u.Host
	}

	return &e
}

func (e *discoveryEngine) name() string {
	return engineNameDiscovery
}

func (e *discoveryEngine) client() *http.Client {
	return e.httpClient
}

func (e *discoveryEngine) config() *portalConfigEngine {
	return e.cfg
}

// discoverySignature computes the request digest.  the signed material is
// the header block (accept type, timestamp, host, api version, each
// newline-terminated, in that fixed order) followed by the sorted query
// string and a final newline.  any drift in ordering or termination
// produces a digest the engine will reject.
func discoverySignature(auth *portalConfigAuth, accept string, ts string, host string, sortedQuery string) string {
	headerBlock := accept + "\n" + ts + "\n" + host + "\n" + auth.Version + "\n"

	mac := hmac.New(sha1.New, []byte(auth.Secret))
	mac.Write([]byte(headerBlock + sortedQuery + "\n"))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// signedRequest builds an engine request for the given path and params,
// attaching the auth headers the discovery engine requires.
func (e *discoveryEngine) signedRequest(path string, params url.Values, isDetail bool) *engineRequest {
	// url.Values.Encode sorts by key, which is exactly the canonical
	// ordering the signature covers
	sortedQuery := params.Encode()

	ts := time.Now().UTC().Format(http.TimeFormat)

	headers := map[string]string{
		"Accept":         discoveryAccept,
		"X-Request-Date": ts,
	}

	if auth := e.cfg.Auth; auth != nil {
		digest := discoverySignature(auth, discoveryAccept, ts, e.signHost, sortedQuery)
		headers["Authorization"] = fmt.Sprintf("%s %s;%s", auth.Scheme, auth.ID, digest)
		headers["X-Api-Version"] = auth.Version
	}

	return &engineRequest{
		url:      e.cfg.Host + path + "?" + sortedQuery,
		headers:  headers,
		isDetail: isDetail,
	}
}

func (e *discoveryEngine) buildSearchRequest(q *searchQuery, selected bool) (*engineRequest, error) {
	params := url.Values{}

	if q.isDetailRequest() == true {
		params.Set("id", q.ID)
		return e.signedRequest(e.cfg.SearchPath, params, true), nil
	}

	params.Set("q", q.Keyword)
	params.Set("page", strconv.Itoa(clampValue(q.Page, 1, e.cfg.PageLimit)))
	params.Set("pageSize", strconv.Itoa(e.cfg.PageSize))

	if q.Format != "" && q.Format != "all" {
		if token, ok := e.cfg.Formats[q.Format]; ok == true {
			params.Set("format", token)
		}
	}

	for key, val := range q.Filters {
		if selected == false && sliceContainsString(filterQueryKeys, key) == true {
			continue
		}

		params.Add("filter", key+":"+val)
	}

	if selected == true && q.Branch != "" {
		params.Add("filter", "branch:"+q.Branch)
	}

	return e.signedRequest(e.cfg.SearchPath, params, false), nil
}

func (e *discoveryEngine) parseResponse(status int, body []byte, isDetail bool) (*engineParsed, error) {
	// this engine responds 401 to well-signed requests whose terms it
	// refuses to search (e.g. unsupported character sets); those are
	// empty results, not failures
	if status == http.StatusUnauthorized {
		return nil, notFoundError("discovery declined the search terms (http 401)")
	}

	if status != http.StatusOK {
		return nil, requestError("discovery returned http status %d", status)
	}

	var resp discoveryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, parseError("unable to parse discovery response: %s", err.Error())
	}

	if resp.Error != nil {
		if resp.Error.Code == e.cfg.NotFoundCode {
			return nil, notFoundError("discovery reported no matches (code %d)", resp.Error.Code)
		}

		return nil, engineError(resp.Error.Code, resp.Error.Message)
	}

	if err := e.convertFacets(&resp); err != nil {
		return nil, parseError("unable to convert discovery facets: %s", err.Error())
	}

	return &engineParsed{
		rowCount:  resp.RecordCount,
		pageCount: resp.PageCount,
		payload:   &resp,
	}, nil
}

// convertFacets decodes the loosely typed facet block into typed facets.
// non-map entries are engine bookkeeping and are ignored.
func (e *discoveryEngine) convertFacets(resp *discoveryResponse) error {
	facets := make(map[string]discoveryFacet)

	for key, val := range resp.FacetsRaw {
		switch val.(type) {
		case map[string]interface{}:
			var facet discoveryFacet

			if err := mapstructure.Decode(val, &facet); err != nil {
				return err
			}

			facets[key] = facet
		}
	}

	resp.facets = facets

	return nil
}

func (e *discoveryEngine) buildRecords(c *clientContext, p *engineParsed) ([]Resource, []error) {
	resp := p.payload.(*discoveryResponse)

	var records []Resource
	var errs []error

	for i := range resp.Records {
		rec, err := discoveryMapRecord(e.cfg, &resp.Records[i])
		if err != nil {
			errs = append(errs, err)
			continue
		}

		records = append(records, *rec)
	}

	return records, errs
}

func (e *discoveryEngine) buildFacets(c *clientContext, q *searchQuery, p *engineParsed) []FacetGroup {
	resp := p.payload.(*discoveryResponse)

	// map iteration order is random; sort for a stable facet ordering
	var keys []string
	for key := range resp.facets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var groups []rawFacetGroup

	for _, key := range keys {
		facet := resp.facets[key]

		group := rawFacetGroup{label: key, total: facet.Count}

		for _, bucket := range facet.Buckets {
			group.values = append(group.values, rawFacetValue{label: bucket.Val, count: bucket.Count})
		}

		groups = append(groups, group)
	}

	return buildFacetGroups(c, q, groups, e.cfg.FacetLimit, e.facetXIDs, e.facetsPath)
}

// buildSuggestions asks the engine's suggestion endpoint for alternatives;
// this engine does not send them inline.  failures here degrade to no
// suggestions rather than failing the search.
func (e *discoveryEngine) buildSuggestions(ctx context.Context, c *clientContext, q *searchQuery, p *engineParsed) *SuggestionSet {
	if e.cfg.SuggestPath == "" {
		return nil
	}

	params := url.Values{}
	params.Set("q", q.Keyword)

	req := e.signedRequest(e.cfg.SuggestPath, params, false)

	status, body, err := doEngineRequest(ctx, e, c, req)
	if err != nil {
		c.warn("[%s] suggestion request failed: %s", e.name(), err.Error())
		return nil
	}

	if status != http.StatusOK {
		c.warn("[%s] suggestion request returned http status %d", e.name(), status)
		return nil
	}

	var resp discoverySuggestResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.warn("[%s] unable to parse suggestion response: %s", e.name(), err.Error())
		return nil
	}

	terms := nonemptyValues(resp.Suggestions)
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
