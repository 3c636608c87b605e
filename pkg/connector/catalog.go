package connector

import (
	"github.com/bellsenawat/instantsearch/pkg/types"
)

type OptionKind int

const (
	KindReset OptionKind = iota
	KindPoint
	KindLowerBound
	KindUpperBound
	KindRange
)

// Option is one selectable numeric bucket. Leave both bounds nil for the
// "no filter" reset option.
type Option struct {
	Name  string   `json:"name"`
	Start *float64 `json:"start,omitempty"`
	End   *float64 `json:"end,omitempty"`
}

func All(name string) Option {
	return Option{Name: name}
}

func Exactly(name string, value float64) Option {
	return Option{Name: name, Start: &value, End: &value}
}

func AtLeast(name string, start float64) Option {
	return Option{Name: name, Start: &start}
}

func AtMost(name string, end float64) Option {
	return Option{Name: name, End: &end}
}

func Between(name string, start, end float64) Option {
	return Option{Name: name, Start: &start, End: &end}
}

// ResolvedOption is an Option with its shape resolved once, so the refinement
// logic never branches on optional fields.
type ResolvedOption struct {
	Name  string
	Kind  OptionKind
	Start float64
	End   float64
}

// Catalog is the ordered option list for one attribute, keyed by name.
type Catalog struct {
	options []ResolvedOption
	byName  map[string]ResolvedOption
}

// NewCatalog resolves and validates the options. Options with start > end or
// duplicate names fail with InvalidOptionError.
func NewCatalog(options []Option) (*Catalog, error) {
	if len(options) == 0 {
		return nil, &types.UsageError{Reason: "at least one option is required"}
	}
	catalog := &Catalog{
		options: make([]ResolvedOption, 0, len(options)),
		byName:  make(map[string]ResolvedOption, len(options)),
	}
	for _, option := range options {
		resolved, err := resolve(option)
		if err != nil {
			return nil, err
		}
		if _, exists := catalog.byName[resolved.Name]; exists {
			return nil, &types.InvalidOptionError{Name: resolved.Name, Reason: "duplicate option name"}
		}
		catalog.options = append(catalog.options, resolved)
		catalog.byName[resolved.Name] = resolved
	}
	return catalog, nil
}

func resolve(option Option) (ResolvedOption, error) {
	resolved := ResolvedOption{Name: option.Name}
	switch {
	case option.Start == nil && option.End == nil:
		resolved.Kind = KindReset
	case option.Start != nil && option.End == nil:
		resolved.Kind = KindLowerBound
		resolved.Start = *option.Start
	case option.Start == nil && option.End != nil:
		resolved.Kind = KindUpperBound
		resolved.End = *option.End
	case *option.Start == *option.End:
		resolved.Kind = KindPoint
		resolved.Start = *option.Start
		resolved.End = *option.End
	default:
		if *option.Start > *option.End {
			return resolved, &types.InvalidOptionError{Name: option.Name, Reason: "start is greater than end"}
		}
		resolved.Kind = KindRange
		resolved.Start = *option.Start
		resolved.End = *option.End
	}
	return resolved, nil
}

func (c *Catalog) Options() []ResolvedOption {
	return c.options
}

func (c *Catalog) Get(name string) (ResolvedOption, bool) {
	option, ok := c.byName[name]
	return option, ok
}
