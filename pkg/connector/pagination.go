package connector

import (
	"github.com/bellsenawat/instantsearch/pkg/search"
	"github.com/bellsenawat/instantsearch/pkg/types"
)

type PaginationParams struct {
	// TotalPages caps the number of reachable pages, 0 means no cap.
	TotalPages int
	// Padding is the number of pages shown on each side of the current one.
	Padding int
}

const defaultPadding = 3

type PaginationRenderState struct {
	Pages        []int                 `json:"pages"`
	CurrentPage  int                   `json:"currentPage"`
	NbHits       int                   `json:"nbHits"`
	NbPages      int                   `json:"nbPages"`
	IsFirstPage  bool                  `json:"isFirstPage"`
	IsLastPage   bool                  `json:"isLastPage"`
	Refine       func(page int) error  `json:"-"`
	CreateURL    func(page int) string `json:"-"`
	WidgetParams PaginationParams      `json:"-"`
}

type PaginationRenderFunc func(rs *PaginationRenderState, isFirstRendering bool)

// Pagination exposes a page window around the current page.
type Pagination struct {
	params   PaginationParams
	renderFn PaginationRenderFunc

	refine    func(page int) error
	createURL func(page int) string
}

func NewPagination(params PaginationParams, renderFn PaginationRenderFunc) (*Pagination, error) {
	if renderFn == nil {
		return nil, &types.UsageError{Reason: "pagination needs a render function"}
	}
	if params.TotalPages < 0 || params.Padding < 0 {
		return nil, &types.UsageError{Reason: "pagination bounds must not be negative"}
	}
	if params.Padding == 0 {
		params.Padding = defaultPadding
	}
	return &Pagination{
		params:   params,
		renderFn: renderFn,
	}, nil
}

func (p *Pagination) Init(o search.InitOptions) error {
	helper := o.Helper
	p.refine = func(page int) error {
		return helper.SetState(helper.State().SetPage(page)).Search()
	}
	p.createURL = func(page int) string {
		return o.CreateURL(helper.State().SetPage(page))
	}
	p.renderFn(p.renderState(o.State.Page, 0, 0), true)
	return nil
}

func (p *Pagination) Render(o search.RenderOptions) error {
	nbPages := o.Results.NbPages
	if p.params.TotalPages > 0 && nbPages > p.params.TotalPages {
		nbPages = p.params.TotalPages
	}
	p.renderFn(p.renderState(o.State.Page, nbPages, o.Results.NbHits), false)
	return nil
}

func (p *Pagination) renderState(currentPage, nbPages, nbHits int) *PaginationRenderState {
	window := pager{currentPage: currentPage, nbPages: nbPages, padding: p.params.Padding}
	return &PaginationRenderState{
		Pages:        window.pages(),
		CurrentPage:  currentPage,
		NbHits:       nbHits,
		NbPages:      nbPages,
		IsFirstPage:  window.isFirstPage(),
		IsLastPage:   window.isLastPage(),
		Refine:       p.refine,
		CreateURL:    p.createURL,
		WidgetParams: p.params,
	}
}

type pager struct {
	currentPage int
	nbPages     int
	padding     int
}

// pages returns the visible page window, centered on the current page and
// clamped at both ends so the window size only shrinks when there are fewer
// pages than it can hold.
func (p pager) pages() []int {
	total := min(2*p.padding+1, p.nbPages)
	if total <= 0 {
		return []int{}
	}
	first := p.currentPage - p.paddingLeft(total)
	pages := make([]int, total)
	for i := range pages {
		pages[i] = first + i
	}
	return pages
}

func (p pager) paddingLeft(total int) int {
	switch {
	case p.currentPage <= p.padding:
		return p.currentPage
	case p.currentPage >= p.nbPages-p.padding:
		return total - (p.nbPages - p.currentPage)
	default:
		return p.padding
	}
}

func (p pager) isFirstPage() bool {
	return p.currentPage == 0
}

func (p pager) isLastPage() bool {
	return p.currentPage >= p.nbPages-1
}
