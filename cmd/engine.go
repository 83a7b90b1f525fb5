package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// the per-engine pipeline contract.  each engine implements the same set of
// lifecycle steps (build request, parse, map records/facets/suggestions) and
// a single generic runner drives them, so the aggregator never needs to know
// which engine it is talking to.

type engineRequest struct {
	url      string
	headers  map[string]string
	isDetail bool // id lookup; suppresses suggestions and enables hard-fail mode
}

// engineParsed wraps an engine's decoded payload along with the metadata the
// generic runner needs.  pageCount 0 means the engine sent no pager block.
type engineParsed struct {
	rowCount  int
	pageCount int
	payload   interface{}
}

type searchEngine interface {
	name() string
	client() *http.Client
	config() *portalConfigEngine
	buildSearchRequest(q *searchQuery, selected bool) (*engineRequest, error)
	parseResponse(status int, body []byte, isDetail bool) (*engineParsed, error)
	buildRecords(c *clientContext, p *engineParsed) ([]Resource, []error)
	buildFacets(c *clientContext, q *searchQuery, p *engineParsed) []FacetGroup
	buildSuggestions(ctx context.Context, c *clientContext, q *searchQuery, p *engineParsed) *SuggestionSet
}

// emptyEngineResult returns the empty-safe bundle used for zero-row and
// total-failure cases, so downstream consumers never null-check the bundle.
func emptyEngineResult() EngineResult {
	return EngineResult{
		RowCount:   0,
		Facets:     []FacetGroup{},
		Results:    []Resource{},
		Pagination: nil,
	}
}

// runEngineSearch executes one engine's full pipeline for a query.  every
// failure is captured in the returned bundle; this function never panics and
// never returns an error, which is what keeps one engine's failure from
// contaminating the other's results.
func runEngineSearch(ctx context.Context, e searchEngine, c *clientContext, orig *searchQuery, selected bool) EngineResult {
	res := emptyEngineResult()

	start := time.Now()

	defer func() {
		res.ElapsedMS = int64(time.Since(start) / time.Millisecond)
	}()

	// each pipeline works on its own copy of the query
	q := orig.clone()

	req, err := e.buildSearchRequest(q, selected)
	if err != nil {
		c.err("[%s] request creation error: %s", e.name(), err.Error())
		res.Error = asErrorInfo(err)
		return res
	}

	status, body, err := doEngineRequest(ctx, e, c, req)
	if err != nil {
		c.err("[%s] request execution error: %s", e.name(), err.Error())
		res.Error = asErrorInfo(err)
		return res
	}

	parsed, err := e.parseResponse(status, body, req.isDetail)
	if err != nil {
		// recognized empty-result conditions are not errors; they render as zero rows
		if errorIsKind(err, errKindNotFound) {
			c.log("[%s] %s; returning empty result", e.name(), err.Error())
			return res
		}

		c.err("[%s] response parsing error: %s", e.name(), err.Error())
		res.Error = asErrorInfo(err)
		return res
	}

	res.RowCount = parsed.rowCount

	if c.opts.debug == true {
		c.log("[%s] parsed: %d row(s) over %d page(s)", e.name(), parsed.rowCount, parsed.pageCount)
	}

	records, recordErrs := e.buildRecords(c, parsed)
	for _, recErr := range recordErrs {
		c.warn("[%s] skipping record: %s", e.name(), recErr.Error())
	}
	if records != nil {
		res.Results = records
	}

	// on the success path nil means "engine sent no facet groups"; the
	// empty-safe [] default is reserved for failure and empty-result bundles
	res.Facets = e.buildFacets(c, q, parsed)

	res.Pagination = buildPagination(q, parsed.rowCount, parsed.pageCount, e.config().PageLimit)

	// zero-row keyword searches get a "did you mean" pass; id lookups do not
	if parsed.rowCount == 0 && req.isDetail == false && q.Keyword != "" {
		res.Suggestions = e.buildSuggestions(ctx, c, q, parsed)
	}

	return res
}

// doEngineRequest performs the outbound HTTP call for an engine request,
// with the external service logging both engines share.
func doEngineRequest(ctx context.Context, e searchEngine, c *clientContext, er *engineRequest) (int, []byte, error) {
	req, reqErr := http.NewRequestWithContext(ctx, "GET", er.url, nil)
	if reqErr != nil {
		c.log("[%s] NewRequest() failed: %s", e.name(), reqErr.Error())
		return 0, nil, requestError("failed to create %s request", e.name())
	}

	for key, val := range er.headers {
		req.Header.Set(key, val)
	}

	if c.opts.verbose == true {
		c.log("[%s] req: [%s]", e.name(), er.url)
	}

	start := time.Now()
	res, resErr := e.client().Do(req)
	elapsedMS := int64(time.Since(start) / time.Millisecond)

	// external service failure logging (scenario 1)

	if resErr != nil {
		status := http.StatusBadRequest
		errMsg := resErr.Error()
		if strings.Contains(errMsg, "Timeout") || strings.Contains(errMsg, "deadline exceeded") {
			status = http.StatusRequestTimeout
			errMsg = fmt.Sprintf("%s timed out", er.url)
		} else if strings.Contains(errMsg, "connection refused") {
			status = http.StatusServiceUnavailable
			errMsg = fmt.Sprintf("%s refused connection", er.url)
		}

		c.log("[%s] client.Do() failed: %s", e.name(), resErr.Error())
		c.log("ERROR: Failed response from GET %s - %d:%s. Elapsed Time: %d (ms)", er.url, status, errMsg, elapsedMS)
		return 0, nil, requestError("failed to receive %s response", e.name())
	}

	defer res.Body.Close()

	body, readErr := io.ReadAll(res.Body)
	if readErr != nil {
		c.log("[%s] body read failed: %s", e.name(), readErr.Error())
		return 0, nil, requestError("failed to read %s response", e.name())
	}

	// external service success logging

	c.log("Successful %s response from GET %s. Elapsed Time: %d (ms)", e.name(), er.url, elapsedMS)

	return res.StatusCode, body, nil
}

// pingEngine issues a minimal connectivity check against an engine.
func pingEngine(ctx context.Context, e searchEngine, c *clientContext) error {
	q := &searchQuery{Keyword: "*", Page: 1, Filters: map[string]string{}}

	req, err := e.buildSearchRequest(q, false)
	if err != nil {
		return err
	}

	status, _, err := doEngineRequest(ctx, e, c, req)
	if err != nil {
		return err
	}

	if status >= http.StatusInternalServerError {
		return requestError("%s health check returned status %d", e.name(), status)
	}

	return nil
}
