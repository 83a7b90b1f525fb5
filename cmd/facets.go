package main

import (
	"strings"
)

// engine-neutral facet assembly.  each engine reduces its native facet
// payload to rawFacetGroup values; this builder handles the shared concerns
// of filter URLs, display truncation, and label localization.

type rawFacetValue struct {
	label string
	count int
}

type rawFacetGroup struct {
	label  string
	total  int
	values []rawFacetValue
}

// buildFacetGroups converts an engine's facet payload into display groups.
// returns nil when the engine sent no usable groups, so the caller's
// empty-safe default survives untouched.
func buildFacetGroups(c *clientContext, q *searchQuery, groups []rawFacetGroup, limit int, xids map[string]string, facetsPath string) []FacetGroup {
	var out []FacetGroup

	for _, group := range groups {
		if len(group.values) == 0 {
			continue
		}

		// the lowercased engine label doubles as the filter key
		rawLabel := strings.ToLower(group.label)

		fg := FacetGroup{
			Label:      c.localize(facetLabelXID(rawLabel, xids)),
			RawLabel:   rawLabel,
			TotalCount: group.total,
		}

		if fg.TotalCount == 0 {
			for _, val := range group.values {
				fg.TotalCount += val.count
			}
		}

		shown := group.values
		if limit > 0 && len(shown) > limit {
			shown = shown[:limit]
			fg.MoreCount = len(group.values) - limit
			fg.MoreURL = facetsPath + "?" + q.queryString()
		}

		for _, val := range shown {
			fg.Facets = append(fg.Facets, Facet{
				Label: val.label,
				Count: val.count,
				URL:   q.urlWithFilter(rawLabel, val.label),
			})
		}

		out = append(out, fg)
	}

	return out
}

// facetLabelXID maps an engine facet label to its translation ID, falling
// back to the label itself for anything unmapped.
func facetLabelXID(rawLabel string, xids map[string]string) string {
	if xid, ok := xids[rawLabel]; ok == true {
		return xid
	}

	return rawLabel
}
