package main

// wire types for the discovery engine's JSON search API.  display fields
// arrive as a tagged array whose values may be a single string or an array
// of strings; getValues() flattens that distinction at the parser boundary
// so the mapping layer only ever sees string slices.

type discoveryItem struct {
	Name   string      `json:"name"`
	Values interface{} `json:"values"`
}

type discoveryHolding struct {
	Location     string `json:"location"`
	Sublocation  string `json:"sublocation,omitempty"`
	Status       string `json:"status,omitempty"`
	Copies       int    `json:"copies,omitempty"`
	Datasource   string `json:"datasource,omitempty"`
	NativeID     string `json:"nativeId,omitempty"`
	PlaceHoldURL string `json:"placeHoldUrl,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type discoveryRecord struct {
	ID       string             `json:"id"`
	Display  []discoveryItem    `json:"display"`
	Holdings []discoveryHolding `json:"holdings,omitempty"`
}

type discoveryError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type discoveryFacetBucket struct {
	Val   string `json:"val"`
	Count int    `json:"count"`
}

type discoveryFacet struct {
	Count   int                    `json:"count"`
	Buckets []discoveryFacetBucket `json:"buckets,omitempty"`
}

type discoveryResponse struct {
	Status      string          `json:"status,omitempty"`
	Error       *discoveryError `json:"error,omitempty"`
	RecordCount int             `json:"recordCount"`
	Page        int             `json:"page,omitempty"`
	PageCount   int             `json:"pageCount,omitempty"`
	Records     []discoveryRecord `json:"records,omitempty"`
	DidYouMean  []string          `json:"didYouMean,omitempty"`

	// the facet block's shape varies by group, so it is decoded loosely
	// here and converted to typed facets after the initial unmarshal
	FacetsRaw map[string]interface{} `json:"facets,omitempty"`

	facets map[string]discoveryFacet
}

type discoverySuggestResponse struct {
	Suggestions []string `json:"suggestions,omitempty"`
}

// getValues returns the values of the named display item as a string slice,
// regardless of how the engine chose to encode them.
func (r *discoveryRecord) getValues(name string) []string {
	var vals []string

	for _, item := range r.Display {
		if item.Name != name {
			continue
		}

		switch v := item.Values.(type) {
		case string:
			if v != "" {
				vals = append(vals, v)
			}

		case []interface{}:
			for _, entry := range v {
				if s, ok := entry.(string); ok == true && s != "" {
					vals = append(vals, s)
				}
			}
		}
	}

	return vals
}

func (r *discoveryRecord) getFirstValue(name string) string {
	return firstElementOf(r.getValues(name))
}
