package params

import (
	"net/url"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantPage   int
		wantOffset int
	}{
		{"defaults", "", 10, 1, 0},
		{"explicit", "limit=20&page=3", 20, 3, 40},
		{"limit capped", "limit=500", 50, 1, 0},
		{"negative limit falls back", "limit=-5", 10, 1, 0},
		{"bad page ignored", "page=zero", 10, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			p := ParsePagination(q)
			if p.Limit != tt.wantLimit || p.Page != tt.wantPage || p.Offset != tt.wantOffset {
				t.Fatalf("got limit=%d page=%d offset=%d, want limit=%d page=%d offset=%d",
					p.Limit, p.Page, p.Offset, tt.wantLimit, tt.wantPage, tt.wantOffset)
			}
		})
	}
}

func TestComputeMeta(t *testing.T) {
	p := Pagination{Limit: 10, Page: 2, Offset: 10}
	p.ComputeMeta(35)

	if p.TotalPages != 4 {
		t.Fatalf("TotalPages = %d, want 4", p.TotalPages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Fatalf("HasNext=%v HasPrev=%v, want both true", p.HasNext, p.HasPrev)
	}

	p = Pagination{Limit: 10, Page: 4, Offset: 30}
	p.ComputeMeta(35)
	if p.HasNext {
		t.Fatal("last page should not have a next page")
	}
}
