package main

// pagination builds a capped page navigation block for one engine's results.
// the page range always includes the first and last pages, with spacer
// entries standing in for elided runs.

const (
	pageKindPage   = "page"
	pageKindSpacer = "spacer"
)

func makePage(q *searchQuery, number int) Page {
	return Page{
		Number:  number,
		Kind:    pageKindPage,
		URL:     q.urlWithPage(number),
		Visible: true,
	}
}

func makeSpacerPage() Page {
	return Page{
		Kind:    pageKindSpacer,
		Visible: true,
	}
}

// buildPagination derives the navigation block from an engine's reported
// totals.  zero rows means no pagination at all; a missing pager block
// collapses to a single page.  the reported page count is capped at the
// engine's page limit before any range math happens, so navigation never
// links past what the engine will actually serve.
func buildPagination(q *searchQuery, rowCount int, reportedPageCount int, pageLimit int) *Pagination {
	if rowCount == 0 {
		return nil
	}

	pageCount := reportedPageCount
	if pageCount < 1 {
		pageCount = 1
	}

	if pageLimit > 0 && pageCount > pageLimit {
		pageCount = pageLimit
	}

	page := clampValue(q.Page, 1, pageCount)

	p := Pagination{
		PageNumber: page,
		PageCount:  pageCount,
	}

	p.FirstPage = makePage(q, 1)
	p.LastPage = makePage(q, pageCount)

	// prev/next clamp to the boundary page so a URL always exists, but are
	// hidden when there is nowhere to go
	p.PreviousPage = makePage(q, clampValue(page-1, 1, pageCount))
	p.PreviousPage.Visible = page > 1

	p.NextPage = makePage(q, clampValue(page+1, 1, pageCount))
	p.NextPage.Visible = page < pageCount

	var pages []Page

	switch {
	// few enough pages to just list them all
	case pageCount <= 5:
		for n := 1; n <= pageCount; n++ {
			pages = append(pages, makePage(q, n))
		}

	// near the start: run from page 1 up to the current page, elide the rest
	case page < 4 && page < pageCount-2:
		for n := 1; n <= page; n++ {
			pages = append(pages, makePage(q, n))
		}
		pages = append(pages, makeSpacerPage(), makePage(q, pageCount))

	// near the end: elide the front, run from the current page to the last
	case page > pageCount-3 && page > 3:
		pages = append(pages, makePage(q, 1), makeSpacerPage())
		for n := page; n <= pageCount; n++ {
			pages = append(pages, makePage(q, n))
		}

	// somewhere in the middle: a window of three around the current page
	default:
		pages = append(pages, makePage(q, 1), makeSpacerPage())
		for n := page - 1; n <= page+1; n++ {
			pages = append(pages, makePage(q, n))
		}
		pages = append(pages, makeSpacerPage(), makePage(q, pageCount))
	}

	p.PageRange = pages

	return &p
}
