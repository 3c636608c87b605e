package engine

type idSet map[uint32]struct{}

func (s idSet) add(id uint32) {
	s[id] = struct{}{}
}

func (s idSet) has(id uint32) bool {
	_, ok := s[id]
	return ok
}

func (s idSet) intersect(other idSet) idSet {
	result := idSet{}
	for id := range s {
		if other.has(id) {
			result.add(id)
		}
	}
	return result
}

// numberField holds one numeric value per document for a single attribute.
type numberField struct {
	values map[uint32]float64
}

func newNumberField() *numberField {
	return &numberField{values: map[uint32]float64{}}
}

func (f *numberField) add(id uint32, value float64) {
	f.values[id] = value
}

func (f *numberField) matchRange(minValue, maxValue float64) idSet {
	found := idSet{}
	if minValue > maxValue {
		return found
	}
	for id, value := range f.values {
		if value >= minValue && value <= maxValue {
			found.add(id)
		}
	}
	return found
}

func (f *numberField) matchEqual(value float64) idSet {
	return f.matchRange(value, value)
}
