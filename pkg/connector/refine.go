package connector

import (
	"github.com/bellsenawat/instantsearch/pkg/state"
	"github.com/bellsenawat/instantsearch/pkg/types"
)

// IsRefined reports whether the option is active against the snapshot. The
// reset option counts as refined only when the attribute carries no
// refinement under any operator.
func IsRefined(st *state.State, attribute string, option ResolvedOption) bool {
	refinements := st.GetNumericRefinements(attribute)
	switch option.Kind {
	case KindPoint:
		return refinements.Has(types.OpEqual, option.Start)
	case KindLowerBound:
		return refinements.Has(types.OpGreaterThanEqual, option.Start)
	case KindUpperBound:
		return refinements.Has(types.OpLessThanEqual, option.End)
	case KindRange:
		return refinements.Has(types.OpGreaterThanEqual, option.Start) &&
			refinements.Has(types.OpLessThanEqual, option.End)
	default:
		return refinements.Empty()
	}
}

// Refine computes the next snapshot for toggling the named option. The reset
// option clears the attribute unconditionally. Selecting an option that is
// not currently refined first clears the attribute, at most one option's
// constraints are active at a time. Bound toggles are symmetric: toggling an
// active option removes its constraints again.
func Refine(st *state.State, attribute string, catalog *Catalog, name string) (*state.State, error) {
	option, ok := catalog.Get(name)
	if !ok {
		return nil, &types.InvalidOptionError{Name: name, Reason: "no such option"}
	}
	if option.Kind == KindReset {
		return st.ClearRefinements(attribute), nil
	}
	next := st
	if !IsRefined(st, attribute, option) {
		next = next.ClearRefinements(attribute)
	}
	switch option.Kind {
	case KindPoint:
		next = toggle(next, attribute, types.OpEqual, option.Start)
	case KindLowerBound:
		next = toggle(next, attribute, types.OpGreaterThanEqual, option.Start)
	case KindUpperBound:
		next = toggle(next, attribute, types.OpLessThanEqual, option.End)
	case KindRange:
		next = toggle(next, attribute, types.OpGreaterThanEqual, option.Start)
		next = toggle(next, attribute, types.OpLessThanEqual, option.End)
	}
	return next, nil
}

func toggle(st *state.State, attribute string, op types.Operator, value float64) *state.State {
	if st.GetNumericRefinements(attribute).Has(op, value) {
		return st.RemoveNumericRefinement(attribute, op, value)
	}
	return st.AddNumericRefinement(attribute, op, value)
}
