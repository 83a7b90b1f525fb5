package main

import (
	"strings"
)

// field extraction for discovery records.  the discovery engine sends flat
// named display fields, so mapping is mostly a matter of picking names and
// assembling the publication block.

func discoveryAuthors(r *discoveryRecord) []Author {
	var authors []Author

	for _, name := range r.getValues("author") {
		authors = append(authors, Author{Name: name, Type: "personal"})
	}

	for _, name := range r.getValues("corporateAuthor") {
		authors = append(authors, Author{Name: name, Type: "corporate"})
	}

	return authors
}

func discoveryPublished(r *discoveryRecord) *PublicationData {
	publishers := r.getValues("publisher")
	day := r.getFirstValue("publicationDay")
	month := r.getFirstValue("publicationMonth")
	year := r.getFirstValue("publicationYear")
	volumes := r.getValues("volume")
	issue := r.getFirstValue("issue")
	startPage := r.getFirstValue("startPage")
	endPage := r.getFirstValue("endPage")

	if publishers == nil && year == "" && month == "" && day == "" && volumes == nil && issue == "" && startPage == "" && endPage == "" {
		return nil
	}

	pd := PublicationData{
		Publishers: publishers,
		Volume:     volumes,
		Issue:      issue,
	}

	pd.Date = PublicationDate{
		Day:   day,
		Month: month,
		Year:  year,
		Label: joinNonempty([]string{year, month, day}, "-"),
	}

	if startPage != "" || endPage != "" {
		pd.Page = &PublicationPage{
			Start: startPage,
			End:   endPage,
			Label: joinNonempty([]string{startPage, endPage}, "-"),
		}
	}

	return &pd
}

func discoveryBranches(cfg *portalConfigEngine, r *discoveryRecord) ([]Branch, int) {
	if len(r.Holdings) == 0 {
		return nil, 0
	}

	var branches []Branch

	for _, h := range r.Holdings {
		datasource := h.Datasource
		if datasource == "" {
			datasource = cfg.DatasourceTag
		}

		branches = append(branches, Branch{
			Location:               h.Location,
			Sublocation:            h.Sublocation,
			Status:                 h.Status,
			ItemCount:              h.Copies,
			ExternalDatasourceName: datasource,
			NativeID:               h.NativeID,
			PlaceHoldURL:           h.PlaceHoldURL,
			Notes:                  h.Notes,
		})
	}

	return branches, len(branches)
}

// discoveryMapRecord normalizes one discovery hit into the canonical model.
func discoveryMapRecord(cfg *portalConfigEngine, r *discoveryRecord) (*Resource, error) {
	f := extractedFields{
		externalID: strings.TrimSpace(r.ID),
	}

	title := r.getFirstValue("title")
	if subtitle := r.getFirstValue("subtitle"); subtitle != "" && title != "" {
		title = title + " " + subtitle
	}
	if title != "" {
		f.titles = []string{title}
	}

	f.description = r.getFirstValue("description")

	f.identifiers = Identifiers{
		ISBN:  r.getFirstValue("isbn"),
		EISBN: r.getFirstValue("eisbn"),
		ISSN:  r.getFirstValue("issn"),
		SSID:  r.getFirstValue("ssid"),
	}

	f.authors = discoveryAuthors(r)
	f.published = discoveryPublished(r)
	f.subjects = uniqueStrings(r.getValues("subject"))
	f.series = r.getValues("series")
	f.tags = r.getValues("tag")
	f.notes = r.getValues("note")
	f.contentType = r.getFirstValue("contentType")
	f.thumbnails = r.getValues("thumbnail")
	f.links = r.getValues("link")
	f.branches, f.totalBranches = discoveryBranches(cfg, r)

	return makeResource(engineNameDiscovery, &f)
}
