package state

import (
	"reflect"
	"testing"

	"github.com/bellsenawat/instantsearch/pkg/types"
)

func TestMutatorsReturnNewSnapshots(t *testing.T) {
	base := New()
	refined := base.AddNumericRefinement("price", types.OpGreaterThanEqual, 10)

	if !base.GetNumericRefinements("price").Empty() {
		t.Error("Expected the base snapshot unchanged after AddNumericRefinement")
	}
	if !refined.GetNumericRefinements("price").Has(types.OpGreaterThanEqual, 10) {
		t.Error("Expected the refinement on the new snapshot")
	}

	paged := refined.SetPage(3)
	if refined.Page != 0 || paged.Page != 3 {
		t.Errorf("Expected SetPage to only affect the new snapshot, got %d and %d", refined.Page, paged.Page)
	}
}

func TestRemoveNumericRefinementDropsEmptySets(t *testing.T) {
	st := New().
		AddNumericRefinement("price", types.OpEqual, 10).
		RemoveNumericRefinement("price", types.OpEqual, 10)
	if !st.GetNumericRefinements("price").Empty() {
		t.Errorf("Expected no refinements left, got %v", st.GetNumericRefinements("price"))
	}
	if got := st.NumericAttributes(); len(got) != 0 {
		t.Errorf("Expected no refined attributes, got %v", got)
	}
}

func TestClearRefinementsClearsOneAttribute(t *testing.T) {
	st := New().
		AddNumericRefinement("price", types.OpGreaterThanEqual, 10).
		AddNumericRefinement("weight", types.OpLessThanEqual, 5).
		ClearRefinements("price")

	if !st.GetNumericRefinements("price").Empty() {
		t.Error("Expected price refinements cleared")
	}
	if !st.GetNumericRefinements("weight").Has(types.OpLessThanEqual, 5) {
		t.Error("Expected weight refinements kept")
	}
}

func TestHierarchicalFacetDeclarationAndToggle(t *testing.T) {
	st := New().AddHierarchicalFacet(HierarchicalFacet{
		Name:       "categories",
		Attributes: []string{"categories.lvl0", "categories.lvl1"},
	})

	refined, err := st.ToggleFacetRefinement("categories", "Cameras > Lenses")
	if err != nil {
		t.Fatal(err)
	}
	if got := refined.GetHierarchicalFacetBreadcrumb("categories"); !reflect.DeepEqual(got, []string{"Cameras", "Lenses"}) {
		t.Errorf("Expected breadcrumb [Cameras Lenses], got %v", got)
	}

	// toggling the current leaf moves up one level
	parent, err := refined.ToggleFacetRefinement("categories", "Cameras > Lenses")
	if err != nil {
		t.Fatal(err)
	}
	if got := parent.HierarchicalRefinement("categories"); got != "Cameras" {
		t.Errorf("Expected refinement to move to the parent, got %q", got)
	}

	root, err := parent.ToggleFacetRefinement("categories", "Cameras")
	if err != nil {
		t.Fatal(err)
	}
	if got := root.HierarchicalRefinement("categories"); got != "" {
		t.Errorf("Expected the root toggle to clear the refinement, got %q", got)
	}
}

func TestToggleUndeclaredFacetFails(t *testing.T) {
	_, err := New().ToggleFacetRefinement("categories", "Cameras")
	if _, ok := err.(*types.ConfigurationError); !ok {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
}

func TestDuplicateFacetDeclarationKeepsTheFirst(t *testing.T) {
	first := HierarchicalFacet{Name: "categories", Attributes: []string{"a"}, Separator: " > "}
	st := New().AddHierarchicalFacet(first)
	st = st.AddHierarchicalFacet(HierarchicalFacet{Name: "categories", Attributes: []string{"b"}, Separator: "/"})

	declared, ok := st.HierarchicalFacet("categories")
	if !ok {
		t.Fatal("Expected the facet to stay declared")
	}
	if declared.Separator != " > " || !reflect.DeepEqual(declared.Attributes, []string{"a"}) {
		t.Errorf("Expected the first declaration kept, got %+v", declared)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	base := New().AddHierarchicalFacet(HierarchicalFacet{Name: "categories", Attributes: []string{"categories"}})
	st := base.
		SetQuery("lens").
		SetPage(2).
		AddNumericRefinement("price", types.OpGreaterThanEqual, 20).
		AddNumericRefinement("price", types.OpLessThanEqual, 30.5).
		AddNumericRefinement("rating", types.OpEqual, 4)
	st, err := st.ToggleFacetRefinement("categories", "Cameras > Lenses")
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := Decode(base, st.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Query != "lens" || decoded.Page != 2 || decoded.HitsPerPage != 20 {
		t.Errorf("Scalar fields lost in round trip: %+v", decoded)
	}
	price := decoded.GetNumericRefinements("price")
	if !price.Has(types.OpGreaterThanEqual, 20) || !price.Has(types.OpLessThanEqual, 30.5) {
		t.Errorf("Numeric refinements lost in round trip: %v", price)
	}
	if !decoded.GetNumericRefinements("rating").Has(types.OpEqual, 4) {
		t.Error("Equality refinement lost in round trip")
	}
	if got := decoded.HierarchicalRefinement("categories"); got != "Cameras > Lenses" {
		t.Errorf("Hierarchical refinement lost in round trip, got %q", got)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	build := func() *State {
		return New().
			AddNumericRefinement("weight", types.OpLessThanEqual, 5).
			AddNumericRefinement("price", types.OpGreaterThanEqual, 10).
			AddNumericRefinement("price", types.OpEqual, 99)
	}
	if a, b := build().Encode().Encode(), build().Encode().Encode(); a != b {
		t.Errorf("Expected deterministic encoding, got %q and %q", a, b)
	}
}

func TestDecodeSkipsMalformedEntries(t *testing.T) {
	values := New().Encode()
	values.Add("num", "price")
	values.Add("num", "price:~10")
	values.Add("num", "price:>=oops")
	values.Add("hier", "categories")

	decoded, err := Decode(New(), values)
	if err != nil {
		t.Fatal(err)
	}
	if got := decoded.NumericAttributes(); len(got) != 0 {
		t.Errorf("Expected malformed entries skipped, got refinements on %v", got)
	}
}
