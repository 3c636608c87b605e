package connector

import (
	"reflect"
	"testing"

	"github.com/bellsenawat/instantsearch/pkg/search"
)

func TestPagerWindow(t *testing.T) {
	tests := []struct {
		currentPage int
		nbPages     int
		padding     int
		expected    []int
	}{
		{0, 20, 3, []int{0, 1, 2, 3, 4, 5, 6}},
		{10, 20, 3, []int{7, 8, 9, 10, 11, 12, 13}},
		{19, 20, 3, []int{13, 14, 15, 16, 17, 18, 19}},
		{17, 20, 3, []int{13, 14, 15, 16, 17, 18, 19}},
		{2, 20, 3, []int{0, 1, 2, 3, 4, 5, 6}},
		{0, 3, 3, []int{0, 1, 2}},
		{0, 0, 3, []int{}},
		{1, 4, 1, []int{0, 1, 2}},
	}
	for _, tc := range tests {
		window := pager{currentPage: tc.currentPage, nbPages: tc.nbPages, padding: tc.padding}
		if got := window.pages(); !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("page %d of %d (padding %d): expected %v, got %v",
				tc.currentPage, tc.nbPages, tc.padding, tc.expected, got)
		}
	}
}

func TestPagerBounds(t *testing.T) {
	first := pager{currentPage: 0, nbPages: 5}
	if !first.isFirstPage() || first.isLastPage() {
		t.Error("Expected page 0 of 5 to be first and not last")
	}
	last := pager{currentPage: 4, nbPages: 5}
	if last.isFirstPage() || !last.isLastPage() {
		t.Error("Expected page 4 of 5 to be last and not first")
	}
	empty := pager{currentPage: 0, nbPages: 0}
	if !empty.isFirstPage() || !empty.isLastPage() {
		t.Error("Expected an empty result set to be both first and last page")
	}
}

func TestPaginationLifecycle(t *testing.T) {
	engine := &stubEngine{results: &search.Results{NbHits: 100, NbPages: 5, HitsPerPage: 20}}
	var last *PaginationRenderState
	var lastFirst bool
	renders := 0
	pagination, err := NewPagination(PaginationParams{Padding: 2}, func(rs *PaginationRenderState, first bool) {
		last = rs
		lastFirst = first
		renders++
	})
	if err != nil {
		t.Fatal(err)
	}
	driver := search.NewDriver(engine, nil)
	if err := driver.AddWidgets(pagination); err != nil {
		t.Fatal(err)
	}
	if err := driver.Mount(); err != nil {
		t.Fatal(err)
	}

	if renders != 1 || !lastFirst {
		t.Fatal("Expected one first render after Mount")
	}
	if last.NbHits != 0 || last.NbPages != 0 || len(last.Pages) != 0 {
		t.Errorf("Expected neutral counts on init, got %+v", last)
	}

	if err := last.Refine(2); err != nil {
		t.Fatal(err)
	}
	if lastFirst {
		t.Error("Expected a non-first render after refine")
	}
	if driver.State().Page != 2 {
		t.Errorf("Expected page 2 on the driver state, got %d", driver.State().Page)
	}
	if last.CurrentPage != 2 || last.NbPages != 5 || last.NbHits != 100 {
		t.Errorf("Unexpected render state after refine: %+v", last)
	}
	if !reflect.DeepEqual(last.Pages, []int{0, 1, 2, 3, 4}) {
		t.Errorf("Expected the full window 0..4, got %v", last.Pages)
	}
}

func TestPaginationTotalPagesCap(t *testing.T) {
	engine := &stubEngine{results: &search.Results{NbHits: 100, NbPages: 5, HitsPerPage: 20}}
	var last *PaginationRenderState
	pagination, err := NewPagination(PaginationParams{TotalPages: 2}, func(rs *PaginationRenderState, _ bool) {
		last = rs
	})
	if err != nil {
		t.Fatal(err)
	}
	driver := search.NewDriver(engine, nil)
	if err := driver.AddWidgets(pagination); err != nil {
		t.Fatal(err)
	}
	if err := driver.Mount(); err != nil {
		t.Fatal(err)
	}
	if err := driver.Search(); err != nil {
		t.Fatal(err)
	}
	if last.NbPages != 2 {
		t.Errorf("Expected the page count capped at 2, got %d", last.NbPages)
	}
	if !reflect.DeepEqual(last.Pages, []int{0, 1}) {
		t.Errorf("Expected pages [0 1], got %v", last.Pages)
	}
}

func TestPaginationConstructionErrors(t *testing.T) {
	render := func(*PaginationRenderState, bool) {}
	if _, err := NewPagination(PaginationParams{TotalPages: -1}, render); err == nil {
		t.Error("Expected a negative cap to fail construction")
	}
	if _, err := NewPagination(PaginationParams{}, nil); err == nil {
		t.Error("Expected a nil render function to fail construction")
	}
}
