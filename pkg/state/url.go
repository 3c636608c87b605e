package state

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/bellsenawat/instantsearch/pkg/types"
)

type queryParams struct {
	Query       string `schema:"q"`
	Page        int    `schema:"page"`
	HitsPerPage int    `schema:"size,default:20"`
}

var (
	encoder = schema.NewEncoder()
	decoder = schema.NewDecoder()
)

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// operator order for deterministic encoding
var encodeOps = []types.Operator{types.OpEqual, types.OpGreaterThanEqual, types.OpLessThanEqual}

// Encode serializes the snapshot to query parameters. Numeric refinements use
// one num=<attribute>:<op><value> entry each, hierarchical refinements one
// hier=<name>:<path> entry. Output is deterministic for equal snapshots.
func (s *State) Encode() url.Values {
	values := url.Values{}
	if err := encoder.Encode(&queryParams{
		Query:       s.Query,
		Page:        s.Page,
		HitsPerPage: s.HitsPerPage,
	}, values); err != nil {
		return values
	}
	if s.Query == "" {
		values.Del("q")
	}
	for _, attribute := range sortedKeys(s.numeric) {
		refinements := s.numeric[attribute]
		for _, op := range encodeOps {
			sorted := slices.Clone(refinements[op])
			slices.Sort(sorted)
			for _, value := range sorted {
				values.Add("num", fmt.Sprintf("%s:%s%s", attribute, op, strconv.FormatFloat(value, 'f', -1, 64)))
			}
		}
	}
	for _, name := range sortedKeys(s.hierarchical) {
		values.Add("hier", name+":"+s.hierarchical[name])
	}
	return values
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Decode applies query parameters on top of the base snapshot, keeping the
// base's declared facets. Malformed num/hier entries are skipped.
func Decode(base *State, values url.Values) (*State, error) {
	params := queryParams{}
	if err := decoder.Decode(&params, values); err != nil {
		return nil, err
	}
	result := base.clone()
	result.Query = params.Query
	result.Page = params.Page
	result.HitsPerPage = params.HitsPerPage
	result.numeric = map[string]types.NumericRefinements{}
	result.hierarchical = map[string]string{}
	for _, entry := range values["num"] {
		attribute, op, value, ok := parseNumericParam(entry)
		if !ok {
			continue
		}
		result.numeric[attribute] = result.GetNumericRefinements(attribute).With(op, value)
	}
	for _, entry := range values["hier"] {
		name, path, ok := strings.Cut(entry, ":")
		if !ok || name == "" || path == "" {
			continue
		}
		if _, declared := result.HierarchicalFacet(name); !declared {
			continue
		}
		result.hierarchical[name] = path
	}
	return result, nil
}

func parseNumericParam(entry string) (string, types.Operator, float64, bool) {
	attribute, rest, ok := strings.Cut(entry, ":")
	if !ok || attribute == "" {
		return "", "", 0, false
	}
	var op types.Operator
	switch {
	case strings.HasPrefix(rest, string(types.OpGreaterThanEqual)):
		op = types.OpGreaterThanEqual
	case strings.HasPrefix(rest, string(types.OpLessThanEqual)):
		op = types.OpLessThanEqual
	case strings.HasPrefix(rest, string(types.OpEqual)):
		op = types.OpEqual
	default:
		return "", "", 0, false
	}
	value, err := strconv.ParseFloat(rest[len(op):], 64)
	if err != nil {
		return "", "", 0, false
	}
	return attribute, op, value, true
}
