package attrmap

// View is a read-only projection of one namespace's attributes, as
// returned by AttributeMap.Attributes. It exposes no mutating
// operations; the underlying storage stays owned by the map.
//
// A View is live, like the map views of most collection libraries:
// attributes set or deleted on the map after the View was obtained are
// visible through it. Callers that need a snapshot use Map.
type View struct {
	attrs map[string]any
}

// EmptyView is the process-wide view returned for namespaces that hold
// no attributes. Sharing one instance avoids allocating on every miss;
// callers must not rely on its identity for anything else.
var EmptyView = View{}

// Get returns the value stored under name, or nil if absent.
func (v View) Get(name string) any {
	return v.attrs[name]
}

// Has reports whether name is present.
func (v View) Has(name string) bool {
	_, ok := v.attrs[name]
	return ok
}

// Len returns the number of attributes in the view.
func (v View) Len() int {
	return len(v.attrs)
}

// Names returns the attribute names in the view, in unspecified order.
func (v View) Names() []string {
	return attrNames(v.attrs)
}

// Range calls fn for each attribute in unspecified order until fn
// returns false.
func (v View) Range(fn func(name string, value any) bool) {
	for name, value := range v.attrs {
		if !fn(name, value) {
			return
		}
	}
}

// Map returns the view's content as a fresh map detached from the
// underlying storage.
func (v View) Map() map[string]any {
	return cloneAttrs(v.attrs)
}
