package state

import (
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/bellsenawat/instantsearch/pkg/types"
)

const DefaultSeparator = " > "

// HierarchicalFacet declares one hierarchical attribute group, usually one
// attribute per tree level.
type HierarchicalFacet struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
	Separator  string   `json:"separator"`
	RootPath   string   `json:"rootPath,omitempty"`
}

// State is an immutable snapshot of the query state. Every mutator returns a
// new snapshot and leaves the receiver untouched, so closures can safely hold
// on to the snapshot they were created against.
type State struct {
	Query       string
	Page        int
	HitsPerPage int

	numeric      map[string]types.NumericRefinements
	hierarchical map[string]string
	facets       []HierarchicalFacet
}

func New() *State {
	return &State{
		HitsPerPage:  20,
		numeric:      map[string]types.NumericRefinements{},
		hierarchical: map[string]string{},
	}
}

func (s *State) clone() *State {
	result := &State{
		Query:        s.Query,
		Page:         s.Page,
		HitsPerPage:  s.HitsPerPage,
		numeric:      make(map[string]types.NumericRefinements, len(s.numeric)),
		hierarchical: maps.Clone(s.hierarchical),
		facets:       slices.Clone(s.facets),
	}
	for attr, refinements := range s.numeric {
		result.numeric[attr] = refinements.Clone()
	}
	if result.hierarchical == nil {
		result.hierarchical = map[string]string{}
	}
	return result
}

func (s *State) SetQuery(query string) *State {
	result := s.clone()
	result.Query = query
	return result
}

func (s *State) SetPage(page int) *State {
	result := s.clone()
	result.Page = page
	return result
}

func (s *State) SetHitsPerPage(size int) *State {
	result := s.clone()
	result.HitsPerPage = size
	return result
}

// GetNumericRefinements returns the active refinements for the attribute.
// The returned map is shared with the snapshot and must not be mutated.
func (s *State) GetNumericRefinements(attribute string) types.NumericRefinements {
	refinements, ok := s.numeric[attribute]
	if !ok {
		return types.NumericRefinements{}
	}
	return refinements
}

// NumericAttributes lists every attribute with at least one active numeric
// refinement, sorted.
func (s *State) NumericAttributes() []string {
	attributes := make([]string, 0, len(s.numeric))
	for attribute, refinements := range s.numeric {
		if !refinements.Empty() {
			attributes = append(attributes, attribute)
		}
	}
	slices.Sort(attributes)
	return attributes
}

// HierarchicalFacets lists the declared hierarchical facets.
func (s *State) HierarchicalFacets() []HierarchicalFacet {
	return s.facets
}

func (s *State) AddNumericRefinement(attribute string, op types.Operator, value float64) *State {
	result := s.clone()
	result.numeric[attribute] = result.GetNumericRefinements(attribute).With(op, value)
	return result
}

func (s *State) RemoveNumericRefinement(attribute string, op types.Operator, value float64) *State {
	result := s.clone()
	next := result.GetNumericRefinements(attribute).Without(op, value)
	if next.Empty() {
		delete(result.numeric, attribute)
	} else {
		result.numeric[attribute] = next
	}
	return result
}

// ClearRefinements drops every refinement held for the attribute, numeric and
// hierarchical alike.
func (s *State) ClearRefinements(attribute string) *State {
	result := s.clone()
	delete(result.numeric, attribute)
	delete(result.hierarchical, attribute)
	return result
}

// AddHierarchicalFacet declares a hierarchical facet. A second declaration
// under the same name with a different shape is ignored with a warning, both
// widgets keep working against the first declaration.
func (s *State) AddHierarchicalFacet(facet HierarchicalFacet) *State {
	if facet.Separator == "" {
		facet.Separator = DefaultSeparator
	}
	existing, ok := s.HierarchicalFacet(facet.Name)
	if ok {
		if existing.Separator != facet.Separator || !slices.Equal(existing.Attributes, facet.Attributes) {
			log.Printf("hierarchical facet %q already declared with a different shape, keeping the first declaration", facet.Name)
		}
		return s
	}
	result := s.clone()
	result.facets = append(result.facets, facet)
	return result
}

func (s *State) HierarchicalFacet(name string) (HierarchicalFacet, bool) {
	for _, facet := range s.facets {
		if facet.Name == name {
			return facet, true
		}
	}
	return HierarchicalFacet{}, false
}

// HierarchicalRefinement returns the refined path for the facet, empty string
// when nothing is refined.
func (s *State) HierarchicalRefinement(name string) string {
	return s.hierarchical[name]
}

// ToggleFacetRefinement refines the facet to path. Toggling the exact current
// path moves the refinement up one level instead, dropping it entirely at the
// root.
func (s *State) ToggleFacetRefinement(name string, path string) (*State, error) {
	facet, ok := s.HierarchicalFacet(name)
	if !ok {
		return nil, &types.ConfigurationError{Reason: "hierarchical facet " + name + " is not declared"}
	}
	result := s.clone()
	if path == "" || path == s.hierarchical[name] {
		parts := splitPath(s.hierarchical[name], facet.Separator)
		if path != "" && len(parts) > 1 {
			result.hierarchical[name] = strings.Join(parts[:len(parts)-1], facet.Separator)
		} else {
			delete(result.hierarchical, name)
		}
		return result, nil
	}
	result.hierarchical[name] = path
	return result, nil
}

// GetHierarchicalFacetBreadcrumb returns the refined path values from root to
// leaf, empty when the facet is unrefined.
func (s *State) GetHierarchicalFacetBreadcrumb(name string) []string {
	facet, ok := s.HierarchicalFacet(name)
	if !ok {
		return nil
	}
	return splitPath(s.hierarchical[name], facet.Separator)
}

func splitPath(path, separator string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, separator)
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
