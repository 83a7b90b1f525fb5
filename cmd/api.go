package main

// schemas

// the unified result model consumed by the portal web layer.  both engines
// are normalized into these shapes; nil means "absent", never an empty
// placeholder.

// Author holds a single author entry for a resource.
type Author struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"` // e.g. "personal", "corporate"
}

// Identifiers holds the standard identifiers a resource may carry.
type Identifiers struct {
	ISBN  string `json:"isbn,omitempty"`
	EISBN string `json:"eisbn,omitempty"`
	ISSN  string `json:"issn,omitempty"`
	SSID  string `json:"ssid,omitempty"`
}

// PublicationDate holds the parts of a publication date along with a label
// built by joining the non-empty parts with "-".
type PublicationDate struct {
	Day   string `json:"day,omitempty"`
	Month string `json:"month,omitempty"`
	Year  string `json:"year,omitempty"`
	Label string `json:"label,omitempty"`
}

// PublicationPage holds start/end page info for serial articles.
type PublicationPage struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Label string `json:"label,omitempty"`
}

// PublicationData holds everything we know about where/when a resource was published.
type PublicationData struct {
	Publishers []string         `json:"publishers,omitempty"`
	Date       PublicationDate  `json:"date"`
	Volume     []string         `json:"volume,omitempty"`
	Issue      string           `json:"issue,omitempty"`
	Page       *PublicationPage `json:"page,omitempty"`
}

// Branch holds per-holding-location availability for a resource.
type Branch struct {
	Location               string `json:"location"`
	Sublocation            string `json:"sublocation,omitempty"`
	Status                 string `json:"status,omitempty"`
	ItemCount              int    `json:"item_count,omitempty"`
	ExternalDatasourceName string `json:"external_datasource_name,omitempty"`
	NativeID               string `json:"native_id,omitempty"`
	PlaceHoldURL           string `json:"place_hold_url,omitempty"`
	Notes                  string `json:"notes,omitempty"`
}

// Resource is the canonical bibliographic record, independent of which
// engine produced it.  Branches may be truncated for display; TotalBranches
// always preserves the true holding count.
type Resource struct {
	ID            string           `json:"id"`
	SourceEngine  string           `json:"source_engine"`
	ExternalID    string           `json:"external_id"`
	Titles        []string         `json:"titles"`
	Description   string           `json:"description,omitempty"`
	Identifiers   Identifiers      `json:"identifiers"`
	Authors       []Author         `json:"authors,omitempty"`
	Published     *PublicationData `json:"published,omitempty"`
	Subjects      []string         `json:"subjects,omitempty"`
	Series        []string         `json:"series,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
	Notes         []string         `json:"notes,omitempty"`
	ContentType   string           `json:"content_type,omitempty"`
	Thumbnails    []string         `json:"thumbnails,omitempty"`
	Links         []string         `json:"links,omitempty"`
	Branches      []Branch         `json:"branches,omitempty"`
	TotalBranches int              `json:"total_branches,omitempty"`
}

// Facet is a single filterable value within a facet group.  URL is the
// current query with this facet's key/value merged in and page reset to 1.
type Facet struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	URL   string `json:"url"`
}

// FacetGroup holds the visible facets for one refinement category.
// Label is localized for the client; RawLabel is the engine's own label.
type FacetGroup struct {
	Label      string  `json:"label"`
	RawLabel   string  `json:"raw_label"`
	TotalCount int     `json:"total_count"`
	MoreCount  int     `json:"more_count,omitempty"`
	MoreURL    string  `json:"more_url,omitempty"`
	Facets     []Facet `json:"facets"`
}

// Page is one entry of a pagination range; Kind is "page" or "spacer".
type Page struct {
	Number  int    `json:"number,omitempty"`
	Kind    string `json:"kind"`
	URL     string `json:"url,omitempty"`
	Visible bool   `json:"visible"`
}

// Pagination holds the capped page navigation for one engine's results.
type Pagination struct {
	PageNumber   int    `json:"page_number"`
	PageCount    int    `json:"page_count"`
	FirstPage    Page   `json:"first_page"`
	PreviousPage Page   `json:"previous_page"`
	PageRange    []Page `json:"page_range"`
	NextPage     Page   `json:"next_page"`
	LastPage     Page   `json:"last_page"`
}

// Suggestion is a single "did you mean" alternative.
type Suggestion struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// SuggestionSet holds the alternatives offered for a zero-result search.
type SuggestionSet struct {
	OriginalQuery string       `json:"original_query"`
	Suggestions   []Suggestion `json:"suggestions"`
}

// ErrorInfo is the error shape surfaced to the web layer.
type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// EngineResult is the per-engine output bundle.  The bundle always exists;
// on total engine failure Error is set and the data fields hold empty-safe
// defaults, so consumers never null-check the bundle itself.
type EngineResult struct {
	RowCount    int            `json:"row_count"`
	Facets      []FacetGroup   `json:"facets"`
	Results     []Resource     `json:"results"`
	Pagination  *Pagination    `json:"pagination"`
	Suggestions *SuggestionSet `json:"suggestions,omitempty"`
	Error       *ErrorInfo     `json:"error,omitempty"`
	ElapsedMS   int64          `json:"elapsed_ms,omitempty"`
}

// AggregateResult is the combined response for one search request.  The
// engines appear under fixed keys regardless of which finished first.
type AggregateResult struct {
	Catalogue EngineResult `json:"catalogue"`
	Discovery EngineResult `json:"discovery"`
	Query     string       `json:"query"`
}

// AggregateFacets is the combined response for a facets-only request.
type AggregateFacets struct {
	Catalogue []FacetGroup `json:"catalogue"`
	Discovery []FacetGroup `json:"discovery"`
	ElapsedMS int64        `json:"elapsed_ms,omitempty"`
}
