package engine

// tree holds one hierarchical facet, each node keeps the ids of every
// document below it.
type tree struct {
	name        string
	path        string
	ids         idSet
	children    []*tree
	childByName map[string]*tree
}

func newTree(name, path string) *tree {
	return &tree{
		name:        name,
		path:        path,
		ids:         idSet{},
		childByName: map[string]*tree{},
	}
}

func (t *tree) addPath(parts []string, separator string, id uint32) {
	t.ids.add(id)
	current := t
	path := ""
	for _, part := range parts {
		if path == "" {
			path = part
		} else {
			path += separator + part
		}
		child, ok := current.childByName[part]
		if !ok {
			child = newTree(part, path)
			current.childByName[part] = child
			current.children = append(current.children, child)
		}
		child.ids.add(id)
		current = child
	}
}

// match returns the ids under the node addressed by parts, empty when the
// path does not exist.
func (t *tree) match(parts []string) idSet {
	current := t
	for _, part := range parts {
		child, ok := current.childByName[part]
		if !ok {
			return idSet{}
		}
		current = child
	}
	return current.ids
}
