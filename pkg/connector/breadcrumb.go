package connector

import (
	"github.com/bellsenawat/instantsearch/pkg/search"
	"github.com/bellsenawat/instantsearch/pkg/state"
	"github.com/bellsenawat/instantsearch/pkg/types"
)

type BreadcrumbParams struct {
	// Name of the hierarchical facet, defaults to the first attribute.
	Name       string
	Attributes []string
	Separator  string
	RootPath   string
}

// BreadcrumbItem is one level of the refined path, root first.
type BreadcrumbItem struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type BreadcrumbRenderState struct {
	Items        []BreadcrumbItem          `json:"items"`
	CanRefine    bool                      `json:"canRefine"`
	Refine       func(value string) error  `json:"-"`
	CreateURL    func(value string) string `json:"-"`
	WidgetParams BreadcrumbParams          `json:"-"`
}

type BreadcrumbRenderFunc func(rs *BreadcrumbRenderState, isFirstRendering bool)

// Breadcrumb exposes the refined path of a hierarchical facet. Refine with an
// item's value to move to that level, with the empty string to go back to the
// root.
type Breadcrumb struct {
	params   BreadcrumbParams
	renderFn BreadcrumbRenderFunc

	refine    func(value string) error
	createURL func(value string) string
}

func NewBreadcrumb(params BreadcrumbParams, renderFn BreadcrumbRenderFunc) (*Breadcrumb, error) {
	if renderFn == nil {
		return nil, &types.UsageError{Reason: "breadcrumb needs a render function"}
	}
	if len(params.Attributes) == 0 {
		return nil, &types.UsageError{Reason: "breadcrumb needs at least one attribute"}
	}
	if params.Name == "" {
		params.Name = params.Attributes[0]
	}
	if params.Separator == "" {
		params.Separator = state.DefaultSeparator
	}
	return &Breadcrumb{
		params:   params,
		renderFn: renderFn,
	}, nil
}

func (b *Breadcrumb) facet() state.HierarchicalFacet {
	return state.HierarchicalFacet{
		Name:       b.params.Name,
		Attributes: b.params.Attributes,
		Separator:  b.params.Separator,
		RootPath:   b.params.RootPath,
	}
}

func (b *Breadcrumb) Init(o search.InitOptions) error {
	helper := o.Helper
	helper.SetState(helper.State().AddHierarchicalFacet(b.facet()))
	next := func(value string) (*state.State, error) {
		current := helper.State()
		if value == "" {
			if b.params.RootPath != "" {
				value = b.params.RootPath
			} else {
				return current.ClearRefinements(b.params.Name), nil
			}
		}
		return current.ToggleFacetRefinement(b.params.Name, value)
	}
	b.refine = func(value string) error {
		snapshot, err := next(value)
		if err != nil {
			return err
		}
		helper.NotifyRefine(b.params.Name, value)
		return helper.SetState(snapshot.SetPage(0)).Search()
	}
	b.createURL = func(value string) string {
		snapshot, err := next(value)
		if err != nil {
			return ""
		}
		return o.CreateURL(snapshot.SetPage(0))
	}
	b.renderFn(&BreadcrumbRenderState{
		Items:        []BreadcrumbItem{},
		CanRefine:    false,
		Refine:       b.refine,
		CreateURL:    b.createURL,
		WidgetParams: b.params,
	}, true)
	return nil
}

func (b *Breadcrumb) Render(o search.RenderOptions) error {
	if _, ok := o.State.HierarchicalFacet(b.params.Name); !ok {
		return &types.ConfigurationError{Reason: "hierarchical facet " + b.params.Name + " was never declared in the state"}
	}
	items := flattenBreadcrumb(o.Results.GetFacetValues(b.params.Name))
	b.renderFn(&BreadcrumbRenderState{
		Items:        items,
		CanRefine:    len(items) > 0,
		Refine:       b.refine,
		CreateURL:    b.createURL,
		WidgetParams: b.params,
	}, false)
	return nil
}

// flattenBreadcrumb walks the refined branch only, ancestors before
// descendants. Unrefined siblings are pruned, never traversed.
func flattenBreadcrumb(node *search.FacetValue) []BreadcrumbItem {
	if node == nil {
		return []BreadcrumbItem{}
	}
	items := []BreadcrumbItem{}
	for _, child := range node.Children {
		if !child.IsRefined {
			continue
		}
		items = append(items, BreadcrumbItem{Name: child.Name, Value: child.Path})
		items = append(items, flattenBreadcrumb(child)...)
	}
	return items
}
