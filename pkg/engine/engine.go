package engine

import (
	"context"
	"math"
	"strings"

	"github.com/bellsenawat/instantsearch/pkg/search"
	"github.com/bellsenawat/instantsearch/pkg/state"
	"github.com/bellsenawat/instantsearch/pkg/types"
)

// Document is one indexable record. Numeric fields are refinable through
// numeric menus, []string fields hold hierarchical category paths.
type Document struct {
	ID     uint32
	Fields map[string]any
}

// Index is a small in-memory engine, enough to drive the connectors without
// an external search backend.
type Index struct {
	order      []uint32
	docs       map[uint32]Document
	numbers    map[string]*numberField
	trees      map[string]*tree
	separators map[string]string
}

func NewIndex() *Index {
	return &Index{
		docs:       map[uint32]Document{},
		numbers:    map[string]*numberField{},
		trees:      map[string]*tree{},
		separators: map[string]string{},
	}
}

// DeclareHierarchy registers a hierarchical facet over the []string field
// with the same name. Must be called before documents are added.
func (i *Index) DeclareHierarchy(name, separator string) {
	if separator == "" {
		separator = state.DefaultSeparator
	}
	i.trees[name] = newTree(name, "")
	i.separators[name] = separator
}

func (i *Index) Add(doc Document) {
	if _, exists := i.docs[doc.ID]; !exists {
		i.order = append(i.order, doc.ID)
	}
	i.docs[doc.ID] = doc
	for attribute, value := range doc.Fields {
		switch v := value.(type) {
		case int:
			i.numberField(attribute).add(doc.ID, float64(v))
		case float64:
			i.numberField(attribute).add(doc.ID, v)
		case []string:
			if root, ok := i.trees[attribute]; ok {
				root.addPath(v, i.separators[attribute], doc.ID)
			}
		}
	}
}

func (i *Index) numberField(attribute string) *numberField {
	field, ok := i.numbers[attribute]
	if !ok {
		field = newNumberField()
		i.numbers[attribute] = field
	}
	return field
}

func (i *Index) all() idSet {
	result := idSet{}
	for id := range i.docs {
		result.add(id)
	}
	return result
}

// Search applies the snapshot's query and refinements and pages the result.
func (i *Index) Search(ctx context.Context, st *state.State) (*search.Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matched := i.all()
	if st.Query != "" {
		matched = matched.intersect(i.matchQuery(st.Query))
	}
	for _, attribute := range st.NumericAttributes() {
		field, ok := i.numbers[attribute]
		if !ok {
			matched = idSet{}
			break
		}
		refinements := st.GetNumericRefinements(attribute)
		for _, value := range refinements[types.OpEqual] {
			matched = matched.intersect(field.matchEqual(value))
		}
		for _, value := range refinements[types.OpGreaterThanEqual] {
			matched = matched.intersect(field.matchRange(value, math.Inf(1)))
		}
		for _, value := range refinements[types.OpLessThanEqual] {
			matched = matched.intersect(field.matchRange(math.Inf(-1), value))
		}
	}
	for _, facet := range st.HierarchicalFacets() {
		parts := st.GetHierarchicalFacetBreadcrumb(facet.Name)
		if len(parts) == 0 {
			continue
		}
		root, ok := i.trees[facet.Name]
		if !ok {
			matched = idSet{}
			continue
		}
		matched = matched.intersect(root.match(parts))
	}

	ordered := make([]uint32, 0, len(matched))
	for _, id := range i.order {
		if matched.has(id) {
			ordered = append(ordered, id)
		}
	}

	size := st.HitsPerPage
	if size <= 0 {
		size = 20
	}
	page := max(st.Page, 0)
	nbHits := len(ordered)
	nbPages := (nbHits + size - 1) / size

	hits := []search.Hit{}
	if start := page * size; start < nbHits {
		for _, id := range ordered[start:min(start+size, nbHits)] {
			hits = append(hits, i.hit(id))
		}
	}
	return &search.Results{
		Hits:        hits,
		NbHits:      nbHits,
		Page:        page,
		NbPages:     nbPages,
		HitsPerPage: size,
		Facets:      i.facetValues(st, matched),
	}, nil
}

func (i *Index) hit(id uint32) search.Hit {
	doc := i.docs[id]
	hit := search.Hit{"objectID": doc.ID}
	for attribute, value := range doc.Fields {
		hit[attribute] = value
	}
	return hit
}

func (i *Index) matchQuery(query string) idSet {
	needle := strings.ToLower(query)
	found := idSet{}
	for id, doc := range i.docs {
		for _, value := range doc.Fields {
			text, ok := value.(string)
			if ok && strings.Contains(strings.ToLower(text), needle) {
				found.add(id)
				break
			}
		}
	}
	return found
}

func (i *Index) facetValues(st *state.State, matched idSet) map[string]*search.FacetValue {
	result := map[string]*search.FacetValue{}
	for _, facet := range st.HierarchicalFacets() {
		root, ok := i.trees[facet.Name]
		if !ok {
			continue
		}
		breadcrumb := st.GetHierarchicalFacetBreadcrumb(facet.Name)
		value := &search.FacetValue{
			Name:  facet.Name,
			Count: countIn(root.ids, matched),
		}
		appendFacetChildren(value, root, matched, breadcrumb, 0, true)
		result[facet.Name] = value
	}
	return result
}

// appendFacetChildren emits children with hits plus the refined branch, which
// stays visible even when filtering left it empty.
func appendFacetChildren(parent *search.FacetValue, node *tree, matched idSet, breadcrumb []string, depth int, onPath bool) {
	for _, child := range node.children {
		refined := onPath && depth < len(breadcrumb) && child.name == breadcrumb[depth]
		count := countIn(child.ids, matched)
		if count == 0 && !refined {
			continue
		}
		value := &search.FacetValue{
			Name:      child.name,
			Path:      child.path,
			Count:     count,
			IsRefined: refined,
		}
		appendFacetChildren(value, child, matched, breadcrumb, depth+1, refined)
		parent.Children = append(parent.Children, value)
	}
}

func countIn(ids idSet, matched idSet) int {
	count := 0
	for id := range ids {
		if matched.has(id) {
			count++
		}
	}
	return count
}
