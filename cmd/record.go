package main

// extractedFields is the intermediate form both engine mappers produce.
// extraction is engine-specific; assembly into a Resource is not.
type extractedFields struct {
	externalID    string
	titles        []string
	description   string
	identifiers   Identifiers
	authors       []Author
	published     *PublicationData
	subjects      []string
	series        []string
	tags          []string
	notes         []string
	contentType   string
	thumbnails    []string
	links         []string
	branches      []Branch
	totalBranches int
}

// makeResource assembles the canonical record for one engine hit.  a record
// with no native ID is unusable (it cannot be linked or deduplicated) and is
// rejected so the caller can skip it without abandoning the rest of the page.
func makeResource(engineName string, f *extractedFields) (*Resource, error) {
	if f.externalID == "" {
		return nil, invalidRecordError("%s record has no id; skipping", engineName)
	}

	r := Resource{
		ID:            engineName + ":" + f.externalID,
		SourceEngine:  engineName,
		ExternalID:    f.externalID,
		Titles:        f.titles,
		Description:   f.description,
		Identifiers:   f.identifiers,
		Authors:       f.authors,
		Published:     f.published,
		Subjects:      f.subjects,
		Series:        f.series,
		Tags:          f.tags,
		Notes:         f.notes,
		ContentType:   f.contentType,
		Thumbnails:    f.thumbnails,
		Links:         f.links,
		Branches:      f.branches,
		TotalBranches: f.totalBranches,
	}

	return &r, nil
}
