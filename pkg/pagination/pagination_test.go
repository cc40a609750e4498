package pagination

import "testing"

func TestPaginationParamsValidate(t *testing.T) {
	tests := []struct {
		name        string
		params      PaginationParams
		wantPage    int
		wantPerPage int
	}{
		{"defaults applied", PaginationParams{Page: 0, PerPage: 0}, 1, 15},
		{"negative page", PaginationParams{Page: -5, PerPage: 10}, 1, 10},
		{"per page capped", PaginationParams{Page: 2, PerPage: 500}, 2, 100},
		{"valid unchanged", PaginationParams{Page: 3, PerPage: 25}, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Validate()
			if tt.params.Page != tt.wantPage || tt.params.PerPage != tt.wantPerPage {
				t.Errorf("got page=%d perPage=%d, want page=%d perPage=%d",
					tt.params.Page, tt.params.PerPage, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := PaginationParams{Page: 3, PerPage: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 15, 31)
	if pg.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", pg.TotalPages)
	}
	if !pg.HasNext || !pg.HasPrev {
		t.Errorf("HasNext/HasPrev = %v/%v, want true/true", pg.HasNext, pg.HasPrev)
	}
}
