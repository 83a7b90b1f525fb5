package main

import (
	"fmt"
	"strings"
	"testing"
)

//
// pagination tests
//

// rangeShape renders a page range compactly, e.g. "1 . 3 4 5 . 7"
func rangeShape(pages []Page) string {
	var parts []string

	for _, p := range pages {
		if p.Kind == pageKindSpacer {
			parts = append(parts, ".")
		} else {
			parts = append(parts, fmt.Sprintf("%d", p.Number))
		}
	}

	return strings.Join(parts, " ")
}

func TestPaginationZeroRows(t *testing.T) {
	if p := buildPagination(testQuery("cats", 1), 0, 0, 50); p != nil {
		t.Fatalf("Expected nil pagination for zero rows, got %+v\n", p)
	}
}

func TestPaginationMissingPagerCollapses(t *testing.T) {
	p := buildPagination(testQuery("cats", 3), 7, 0, 50)

	if p == nil {
		t.Fatalf("Expected pagination, got nil\n")
	}

	if p.PageCount != 1 || p.PageNumber != 1 {
		t.Fatalf("Expected single collapsed page, got count %d page %d\n", p.PageCount, p.PageNumber)
	}

	if p.PreviousPage.Visible != false || p.NextPage.Visible != false {
		t.Fatalf("Expected hidden prev/next on a single page\n")
	}

	if shape := rangeShape(p.PageRange); shape != "1" {
		t.Fatalf("Expected range [1], got [%s]\n", shape)
	}
}

func TestPaginationEnumeratesSmallRanges(t *testing.T) {
	p := buildPagination(testQuery("cats", 2), 100, 5, 50)

	if shape := rangeShape(p.PageRange); shape != "1 2 3 4 5" {
		t.Fatalf("Expected full enumeration, got [%s]\n", shape)
	}
}

func TestPaginationMiddleWindow(t *testing.T) {
	p := buildPagination(testQuery("cats", 4), 140, 7, 50)

	if shape := rangeShape(p.PageRange); shape != "1 . 3 4 5 . 7" {
		t.Fatalf("Expected [1 . 3 4 5 . 7], got [%s]\n", shape)
	}
}

func TestPaginationNearStart(t *testing.T) {
	p := buildPagination(testQuery("cats", 2), 200, 10, 50)

	if shape := rangeShape(p.PageRange); shape != "1 2 . 10" {
		t.Fatalf("Expected [1 2 . 10], got [%s]\n", shape)
	}
}

func TestPaginationNearEnd(t *testing.T) {
	p := buildPagination(testQuery("cats", 9), 200, 10, 50)

	if shape := rangeShape(p.PageRange); shape != "1 . 9 10" {
		t.Fatalf("Expected [1 . 9 10], got [%s]\n", shape)
	}
}

func TestPaginationCapsReportedPages(t *testing.T) {
	p := buildPagination(testQuery("cats", 1), 2400, 120, 50)

	if p.PageCount != 50 {
		t.Fatalf("Expected page count capped at 50, got %d\n", p.PageCount)
	}

	if p.LastPage.Number != 50 {
		t.Fatalf("Expected last page 50, got %d\n", p.LastPage.Number)
	}

	for _, entry := range p.PageRange {
		if entry.Number > 50 {
			t.Fatalf("Expected no page past the cap, got %d\n", entry.Number)
		}
	}
}

func TestPaginationClampsCurrentPage(t *testing.T) {
	// current page beyond the cap snaps back into range
	p := buildPagination(testQuery("cats", 80), 2400, 120, 50)

	if p.PageNumber != 50 {
		t.Fatalf("Expected current page clamped to 50, got %d\n", p.PageNumber)
	}

	if p.NextPage.Visible != false {
		t.Fatalf("Expected hidden next page on the last page\n")
	}
}

func TestPaginationPrevNextLinks(t *testing.T) {
	p := buildPagination(testQuery("cats", 4), 140, 7, 50)

	if p.PreviousPage.Number != 3 || p.PreviousPage.Visible != true {
		t.Fatalf("Expected visible previous page 3, got %+v\n", p.PreviousPage)
	}

	if p.NextPage.Number != 5 || p.NextPage.Visible != true {
		t.Fatalf("Expected visible next page 5, got %+v\n", p.NextPage)
	}

	if strings.Contains(p.NextPage.URL, "page=5") == false {
		t.Fatalf("Expected next page url to carry page=5, got [%s]\n", p.NextPage.URL)
	}
}

func TestPaginationBoundaryLinksKeepURLs(t *testing.T) {
	p := buildPagination(testQuery("cats", 1), 140, 7, 50)

	// hidden, but still a well-formed link clamped to the boundary
	if p.PreviousPage.Visible != false || p.PreviousPage.Number != 1 || p.PreviousPage.URL == "" {
		t.Fatalf("Expected hidden previous page clamped to 1 with a url, got %+v\n", p.PreviousPage)
	}
}

// every reachable shape for small page counts: first/last always present,
// spacers never adjacent, current page always in range
func TestPaginationInvariants(t *testing.T) {
	for pageCount := 1; pageCount <= 12; pageCount++ {
		for page := 1; page <= pageCount; page++ {
			p := buildPagination(testQuery("cats", page), pageCount*20, pageCount, 50)

			if p.PageRange[0].Number != 1 {
				t.Fatalf("(%d,%d): first range entry is %d, not 1\n", pageCount, page, p.PageRange[0].Number)
			}

			if last := p.PageRange[len(p.PageRange)-1]; last.Number != pageCount {
				t.Fatalf("(%d,%d): last range entry is %d, not %d\n", pageCount, page, last.Number, pageCount)
			}

			found := false
			prevSpacer := false
			for _, entry := range p.PageRange {
				if entry.Kind == pageKindSpacer {
					if prevSpacer == true {
						t.Fatalf("(%d,%d): adjacent spacers in [%s]\n", pageCount, page, rangeShape(p.PageRange))
					}
					prevSpacer = true
					continue
				}

				prevSpacer = false
				if entry.Number == page {
					found = true
				}
			}

			if found == false {
				t.Fatalf("(%d,%d): current page missing from [%s]\n", pageCount, page, rangeShape(p.PageRange))
			}
		}
	}
}
