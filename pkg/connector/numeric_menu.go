package connector

import (
	"github.com/bellsenawat/instantsearch/pkg/search"
	"github.com/bellsenawat/instantsearch/pkg/state"
	"github.com/bellsenawat/instantsearch/pkg/types"
)

type NumericMenuParams struct {
	Attribute string
	Items     []Option
}

type NumericMenuItem struct {
	Label     string `json:"label"`
	IsRefined bool   `json:"isRefined"`
}

// NumericMenuRenderState is the payload handed to the render callback, same
// shape on first and subsequent renders.
type NumericMenuRenderState struct {
	Items        []NumericMenuItem        `json:"items"`
	CanRefine    bool                     `json:"canRefine"`
	NbHits       int                      `json:"nbHits"`
	Refine       func(name string) error  `json:"-"`
	CreateURL    func(name string) string `json:"-"`
	WidgetParams NumericMenuParams        `json:"-"`
}

type NumericMenuRenderFunc func(rs *NumericMenuRenderState, isFirstRendering bool)

// NumericMenu exposes an exclusive numeric option list for one attribute.
type NumericMenu struct {
	params   NumericMenuParams
	catalog  *Catalog
	renderFn NumericMenuRenderFunc

	refine    func(name string) error
	createURL func(name string) string
}

func NewNumericMenu(params NumericMenuParams, renderFn NumericMenuRenderFunc) (*NumericMenu, error) {
	if renderFn == nil {
		return nil, &types.UsageError{Reason: "numeric menu needs a render function"}
	}
	if params.Attribute == "" {
		return nil, &types.UsageError{Reason: "numeric menu needs an attribute"}
	}
	catalog, err := NewCatalog(params.Items)
	if err != nil {
		return nil, err
	}
	return &NumericMenu{
		params:   params,
		catalog:  catalog,
		renderFn: renderFn,
	}, nil
}

// Init builds the stable refine and createURL closures and issues the first
// render with neutral counts. The closures read the helper's current snapshot
// when invoked, their identity stays stable across renders.
func (m *NumericMenu) Init(o search.InitOptions) error {
	helper := o.Helper
	m.refine = func(name string) error {
		next, err := Refine(helper.State(), m.params.Attribute, m.catalog, name)
		if err != nil {
			return err
		}
		helper.NotifyRefine(m.params.Attribute, name)
		return helper.SetState(next.SetPage(0)).Search()
	}
	m.createURL = func(name string) string {
		next, err := Refine(helper.State(), m.params.Attribute, m.catalog, name)
		if err != nil {
			return ""
		}
		return o.CreateURL(next.SetPage(0))
	}
	m.renderFn(m.renderState(o.State, nil), true)
	return nil
}

func (m *NumericMenu) Render(o search.RenderOptions) error {
	m.renderFn(m.renderState(o.State, o.Results), false)
	return nil
}

func (m *NumericMenu) renderState(st *state.State, results *search.Results) *NumericMenuRenderState {
	options := m.catalog.Options()
	items := make([]NumericMenuItem, 0, len(options))
	for _, option := range options {
		items = append(items, NumericMenuItem{
			Label:     option.Name,
			IsRefined: IsRefined(st, m.params.Attribute, option),
		})
	}
	nbHits := 0
	if results != nil {
		nbHits = results.NbHits
	}
	return &NumericMenuRenderState{
		Items:        items,
		CanRefine:    nbHits > 0,
		NbHits:       nbHits,
		Refine:       m.refine,
		CreateURL:    m.createURL,
		WidgetParams: m.params,
	}
}
