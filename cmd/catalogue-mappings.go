package main

import (
	"strings"
)

// field extraction for catalogue records.  each tagged field carries coded
// subfields, and only an allow-listed set of codes per tag contributes to the
// mapped value; everything else is control data we ignore.

type catalogueFieldSpec struct {
	codes string // subfield codes that contribute, in scan order
	sep   string // separator used when joining contributing subfields
}

var catalogueFieldSpecs = map[string]catalogueFieldSpec{
	"title":       {codes: "anp", sep: " "},
	"subtitle":    {codes: "b", sep: " "},
	"author":      {codes: "abcdq", sep: " "},
	"corpauthor":  {codes: "ab", sep: " "},
	"isbn":        {codes: "az", sep: ", "},
	"eisbn":       {codes: "az", sep: ", "},
	"issn":        {codes: "a", sep: ", "},
	"ssid":        {codes: "a", sep: ", "},
	"publication": {codes: "ab", sep: " "},
	"volume":      {codes: "a", sep: " "},
	"issue":       {codes: "a", sep: " "},
	"pages":       {codes: "ab", sep: "-"},
	"subject":     {codes: "avxyz", sep: " "},
	"series":      {codes: "anpv", sep: " "},
	"tag":         {codes: "a", sep: " "},
	"note":        {codes: "a", sep: ", "},
	"description": {codes: "a", sep: " "},
}

// subfieldValues returns the trimmed, nonempty values of the allow-listed
// subfield codes within one field.  nil when nothing contributes.
func subfieldValues(f *catalogueDataField, codes string) []string {
	var vals []string

	for _, sf := range f.SubFields {
		if sf.Code == "" || strings.Contains(codes, sf.Code) == false {
			continue
		}

		if val := strings.TrimSpace(sf.Value); val != "" {
			vals = append(vals, val)
		}
	}

	return vals
}

func subfieldText(f *catalogueDataField, spec catalogueFieldSpec) string {
	return strings.Join(subfieldValues(f, spec.codes), spec.sep)
}

// catalogueFieldValues maps every occurrence of a tag to its joined text,
// per the tag's field spec.  unknown tags yield nothing.
func catalogueFieldValues(r *catalogueXMLRecord, tag string) []string {
	spec, ok := catalogueFieldSpecs[tag]
	if ok == false {
		return nil
	}

	var vals []string

	for _, f := range r.fieldsByTag(tag) {
		if val := subfieldText(f, spec); val != "" {
			vals = append(vals, val)
		}
	}

	return vals
}

// catalogueFieldText resolves one field's display text.  the engine's
// exact-match annotation wins over the raw subfields when present, and any
// secondary fragment the engine split off is reattached to it.
func catalogueFieldText(f *catalogueDataField, spec catalogueFieldSpec) string {
	switch {
	case f.Exact != "" && f.Secondary != "":
		return f.Exact + f.Secondary
	case f.Exact != "":
		return f.Exact
	}

	return subfieldText(f, spec)
}

// catalogueRecordTitle builds the display title, subtitle appended after
// whatever the exact-preference rule resolved for the main title.
func catalogueRecordTitle(r *catalogueXMLRecord) string {
	f := r.fieldByTag("title")
	if f == nil {
		return ""
	}

	main := catalogueFieldText(f, catalogueFieldSpecs["title"])
	subtitle := subfieldText(f, catalogueFieldSpecs["subtitle"])

	return joinNonempty([]string{main, subtitle}, " ")
}

// author names follow the same exact-preference rule as titles
func catalogueAuthorNames(r *catalogueXMLRecord, tag string) []string {
	spec := catalogueFieldSpecs[tag]

	var names []string

	for _, f := range r.fieldsByTag(tag) {
		if name := catalogueFieldText(f, spec); name != "" {
			names = append(names, name)
		}
	}

	return names
}

func catalogueAuthors(r *catalogueXMLRecord) []Author {
	var authors []Author

	for _, name := range catalogueAuthorNames(r, "author") {
		authors = append(authors, Author{Name: name, Type: "personal"})
	}

	for _, name := range catalogueAuthorNames(r, "corpauthor") {
		authors = append(authors, Author{Name: name, Type: "corporate"})
	}

	return authors
}

// cataloguePublished gathers the publication block.  nil when the record
// carries no publication data at all.
func cataloguePublished(r *catalogueXMLRecord) *PublicationData {
	pubField := r.fieldByTag("publication")
	volumes := catalogueFieldValues(r, "volume")
	issue := firstElementOf(catalogueFieldValues(r, "issue"))
	pageField := r.fieldByTag("pages")

	if pubField == nil && volumes == nil && issue == "" && pageField == nil {
		return nil
	}

	pd := PublicationData{
		Volume: volumes,
		Issue:  issue,
	}

	if pubField != nil {
		pd.Publishers = subfieldValues(pubField, catalogueFieldSpecs["publication"].codes)

		pd.Date = PublicationDate{
			Day:   firstElementOf(subfieldValues(pubField, "d")),
			Month: firstElementOf(subfieldValues(pubField, "m")),
			Year:  firstElementOf(subfieldValues(pubField, "y")),
		}
		pd.Date.Label = joinNonempty([]string{pd.Date.Year, pd.Date.Month, pd.Date.Day}, "-")
	}

	if pageField != nil {
		start := firstElementOf(subfieldValues(pageField, "a"))
		end := firstElementOf(subfieldValues(pageField, "b"))

		if start != "" || end != "" {
			pd.Page = &PublicationPage{
				Start: start,
				End:   end,
				Label: joinNonempty([]string{start, end}, "-"),
			}
		}
	}

	return &pd
}

// catalogueRecordBranches maps holding locations, truncating the displayed
// list at the configured limit while preserving the true total.
func catalogueRecordBranches(cfg *portalConfigEngine, r *catalogueXMLRecord) ([]Branch, int) {
	if r.Branches == nil || len(r.Branches.Branches) == 0 {
		return nil, 0
	}

	total := r.Branches.Total
	if total < len(r.Branches.Branches) {
		total = len(r.Branches.Branches)
	}

	shown := r.Branches.Branches
	if cfg.BranchLimit > 0 && len(shown) > cfg.BranchLimit {
		shown = shown[:cfg.BranchLimit]
	}

	var branches []Branch

	for _, b := range shown {
		datasource := b.Datasource
		if datasource == "" {
			datasource = cfg.DatasourceTag
		}

		branches = append(branches, Branch{
			Location:               b.Location,
			Sublocation:            b.Sublocation,
			Status:                 b.Status,
			ItemCount:              b.ItemCount,
			ExternalDatasourceName: datasource,
			NativeID:               b.NativeID,
			PlaceHoldURL:           b.PlaceHoldURL,
			Notes:                  b.Notes,
		})
	}

	return branches, total
}

// catalogueMapRecord normalizes one catalogue hit into the canonical model.
func catalogueMapRecord(cfg *portalConfigEngine, r *catalogueXMLRecord) (*Resource, error) {
	f := extractedFields{
		externalID: strings.TrimSpace(r.ID),
	}

	if title := catalogueRecordTitle(r); title != "" {
		f.titles = []string{title}
	}

	f.description = firstElementOf(catalogueFieldValues(r, "description"))

	f.identifiers = Identifiers{
		ISBN:  firstElementOf(catalogueFieldValues(r, "isbn")),
		EISBN: firstElementOf(catalogueFieldValues(r, "eisbn")),
		ISSN:  firstElementOf(catalogueFieldValues(r, "issn")),
		SSID:  firstElementOf(catalogueFieldValues(r, "ssid")),
	}

	f.authors = catalogueAuthors(r)
	f.published = cataloguePublished(r)
	f.subjects = uniqueStrings(catalogueFieldValues(r, "subject"))
	f.series = catalogueFieldValues(r, "series")
	f.tags = catalogueFieldValues(r, "tag")
	f.notes = catalogueFieldValues(r, "note")
	f.contentType = strings.TrimSpace(r.ContentType)
	f.thumbnails = nonemptyValues(r.Thumbnails)
	f.links = nonemptyValues(r.Links)
	f.branches, f.totalBranches = catalogueRecordBranches(cfg, r)

	return makeResource(engineNameCatalogue, &f)
}
