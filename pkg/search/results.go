package search

type Hit map[string]any

// FacetValue is one node of a facet value tree. Children are ordered the way
// the engine emitted them, refined nodes keep their position.
type FacetValue struct {
	Name      string        `json:"name"`
	Path      string        `json:"path"`
	Count     int           `json:"count"`
	IsRefined bool          `json:"isRefined"`
	Children  []*FacetValue `json:"data,omitempty"`
}

type Results struct {
	Hits        []Hit                  `json:"hits"`
	NbHits      int                    `json:"nbHits"`
	Page        int                    `json:"page"`
	NbPages     int                    `json:"nbPages"`
	HitsPerPage int                    `json:"hitsPerPage"`
	Facets      map[string]*FacetValue `json:"facets,omitempty"`
}

// GetFacetValues returns the value tree for a facet, nil when the engine did
// not report any values for it.
func (r *Results) GetFacetValues(name string) *FacetValue {
	if r == nil || r.Facets == nil {
		return nil
	}
	return r.Facets[name]
}
