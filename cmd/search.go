package main

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// request orchestration.  a searchContext ties one client request to the
// shared portal resources and fans the query out to both engines.

type searchResponse struct {
	status int         // http status code
	data   interface{} // data to return as JSON
	err    error       // error, if any
}

type searchContext struct {
	portal *portalContext
	client *clientContext
}

func newSearchContext(p *portalContext, c *clientContext) *searchContext {
	return &searchContext{portal: p, client: c}
}

func (s *searchContext) engineByName(name string) searchEngine {
	switch name {
	case engineNameCatalogue, "":
		return s.portal.catalogue
	case engineNameDiscovery:
		return s.portal.discovery
	}

	return nil
}

// aggregate runs both engine pipelines concurrently and waits for both to
// settle.  the closures always return nil; each engine's failure lives in
// its own result bundle, never in the group error.
func (s *searchContext) aggregate(ctx context.Context, q *searchQuery, selectedEngine string) AggregateResult {
	agg := AggregateResult{Query: q.queryString()}

	var g errgroup.Group

	g.Go(func() error {
		agg.Catalogue = runEngineSearch(ctx, s.portal.catalogue, s.client, q, selectedEngine == engineNameCatalogue)
		return nil
	})

	g.Go(func() error {
		agg.Discovery = runEngineSearch(ctx, s.portal.discovery, s.client, q, selectedEngine == engineNameDiscovery)
		return nil
	})

	g.Wait()

	return agg
}

func (s *searchContext) handleSearchRequest(ctx context.Context, raw map[string]string) searchResponse {
	q := parseQuery(raw)

	agg := s.aggregate(ctx, q, raw["engine"])

	s.client.log("search: catalogue: %d row(s) in %d ms; discovery: %d row(s) in %d ms",
		agg.Catalogue.RowCount, agg.Catalogue.ElapsedMS, agg.Discovery.RowCount, agg.Discovery.ElapsedMS)

	return searchResponse{status: http.StatusOK, data: agg}
}

func (s *searchContext) handleFacetsRequest(ctx context.Context, raw map[string]string) searchResponse {
	start := time.Now()

	q := parseQuery(raw)

	agg := s.aggregate(ctx, q, raw["engine"])

	res := AggregateFacets{
		Catalogue: agg.Catalogue.Facets,
		Discovery: agg.Discovery.Facets,
		ElapsedMS: int64(time.Since(start) / time.Millisecond),
	}

	return searchResponse{status: http.StatusOK, data: res}
}

// handleRecordRequest looks up a single record on one engine.  unlike a
// search, a detail lookup has no second engine to fall back on, so engine
// failures surface as real errors here.
func (s *searchContext) handleRecordRequest(ctx context.Context, id string, engineName string) searchResponse {
	e := s.engineByName(engineName)
	if e == nil {
		err := parseError("unrecognized engine: [%s]", engineName)
		return searchResponse{status: http.StatusBadRequest, data: err.info(), err: err}
	}

	q := &searchQuery{ID: id, Page: 1, Filters: map[string]string{}}

	res := runEngineSearch(ctx, e, s.client, q, true)

	if res.Error != nil {
		status := http.StatusInternalServerError
		if res.Error.Code == errCodeRequest {
			status = http.StatusBadGateway
		}

		return searchResponse{status: status, data: res.Error, err: engineError(res.Error.Code, res.Error.Message)}
	}

	if len(res.Results) == 0 {
		err := notFoundError("record not found: [%s]", id)
		return searchResponse{status: err.httpStatus(), data: err.info(), err: err}
	}

	return searchResponse{status: http.StatusOK, data: res.Results[0]}
}
