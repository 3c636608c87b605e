package types

import "slices"

type Operator string

const (
	OpEqual            Operator = "="
	OpGreaterThanEqual Operator = ">="
	OpLessThanEqual    Operator = "<="
)

// NumericRefinements holds the active numeric constraints for one attribute,
// a set of values per operator.
type NumericRefinements map[Operator][]float64

func (r NumericRefinements) Has(op Operator, value float64) bool {
	return slices.Contains(r[op], value)
}

func (r NumericRefinements) Empty() bool {
	for _, values := range r {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

func (r NumericRefinements) Clone() NumericRefinements {
	if r == nil {
		return nil
	}
	result := make(NumericRefinements, len(r))
	for op, values := range r {
		result[op] = slices.Clone(values)
	}
	return result
}

// With returns a copy with value added under op, if not already present.
func (r NumericRefinements) With(op Operator, value float64) NumericRefinements {
	result := r.Clone()
	if result == nil {
		result = NumericRefinements{}
	}
	if !result.Has(op, value) {
		result[op] = append(result[op], value)
	}
	return result
}

// Without returns a copy with value removed from op's set.
func (r NumericRefinements) Without(op Operator, value float64) NumericRefinements {
	result := r.Clone()
	if result == nil {
		return NumericRefinements{}
	}
	values := result[op]
	idx := slices.Index(values, value)
	if idx >= 0 {
		values = slices.Delete(values, idx, idx+1)
	}
	if len(values) == 0 {
		delete(result, op)
	} else {
		result[op] = values
	}
	return result
}
