package attrmap

import (
	"hash/fnv"
	"reflect"
	"sort"
)

// AttributeMap maps (namespace, name) pairs to arbitrary values.
//
// Storage is two-tiered: the first namespace ever written occupies the
// singleton slot, every later namespace lives in the lazily allocated
// overflow tier. The split is invisible to readers; it exists so the
// common single-namespace document pays for one inner map and nothing
// else.
//
// The zero value is an empty map ready for use, but instances are
// normally created through New or NewFrom.
type AttributeMap struct {
	// singleton is the namespace occupying the fast slot, "" while the
	// map has never stored a value. Once set it never changes.
	singleton string
	// content holds the singleton namespace's attributes. Non-nil iff
	// singleton is set, and kept allocated even when emptied.
	content map[string]any
	// overflow holds every namespace other than singleton. Allocated on
	// first use; inner maps are dropped as soon as they empty, so every
	// inner map present is non-empty.
	overflow map[string]map[string]any
}

// New creates an empty AttributeMap.
func New() *AttributeMap {
	return &AttributeMap{}
}

// NewFrom creates an AttributeMap holding a deep copy of src. Both
// tiers and every inner map are duplicated, so mutating either map
// never affects the other. A nil src yields an empty map.
func NewFrom(src *AttributeMap) *AttributeMap {
	m := &AttributeMap{}
	if src == nil {
		return m
	}
	if src.singleton != "" {
		m.singleton = src.singleton
		m.content = cloneAttrs(src.content)
	}
	if src.overflow != nil {
		m.overflow = make(map[string]map[string]any, len(src.overflow))
		for ns, attrs := range src.overflow {
			m.overflow[ns] = cloneAttrs(attrs)
		}
	}
	return m
}

// Clone returns a deep copy of the map. Clone(m).Equal(m) holds
// immediately after the call.
func (m *AttributeMap) Clone() *AttributeMap {
	return NewFrom(m)
}

// Set stores value under (namespace, name) and returns the value
// previously stored there, or nil if none. A nil value deletes the
// entry. Both keys must be non-empty or Set fails with
// ErrInvalidArgument before touching any state.
//
// The first successful Set with a non-nil value permanently adopts its
// namespace as the singleton namespace.
func (m *AttributeMap) Set(namespace, name string, value any) (any, error) {
	if err := checkKeys(namespace, name); err != nil {
		return nil, err
	}

	if m.singleton == "" {
		// No namespace adopted yet. Deleting from an empty map is a
		// no-op and must not adopt a namespace.
		if value == nil {
			return nil, nil
		}
		m.singleton = namespace
		m.content = map[string]any{name: value}
		return nil, nil
	}

	if namespace == m.singleton {
		prev := m.content[name]
		if value == nil {
			delete(m.content, name)
		} else {
			m.content[name] = value
		}
		return prev, nil
	}

	attrs, ok := m.overflow[namespace]
	if !ok {
		if value == nil {
			return nil, nil
		}
		if m.overflow == nil {
			m.overflow = make(map[string]map[string]any)
		}
		m.overflow[namespace] = map[string]any{name: value}
		return nil, nil
	}

	prev := attrs[name]
	if value == nil {
		delete(attrs, name)
		if len(attrs) == 0 {
			delete(m.overflow, namespace)
		}
	} else {
		attrs[name] = value
	}
	return prev, nil
}

// Get returns the value stored under (namespace, name), or nil if the
// pair is unknown. Unknown namespaces are not an error; empty keys are,
// with ErrInvalidArgument.
func (m *AttributeMap) Get(namespace, name string) (any, error) {
	if err := checkKeys(namespace, name); err != nil {
		return nil, err
	}
	if m.singleton == "" {
		return nil, nil
	}
	if namespace == m.singleton {
		return m.content[name], nil
	}
	if attrs, ok := m.overflow[namespace]; ok {
		return attrs[name], nil
	}
	return nil, nil
}

// First returns the value stored under name in any namespace, checking
// the singleton tier first and then the overflow tier in unspecified
// order, or nil if no namespace holds the name. If several namespaces
// hold the name, which value is returned is unspecified and may differ
// between calls.
func (m *AttributeMap) First(name string) (any, error) {
	if name == "" {
		return nil, errEmptyName
	}
	if v := m.content[name]; v != nil {
		return v, nil
	}
	for _, attrs := range m.overflow {
		if v := attrs[name]; v != nil {
			return v, nil
		}
	}
	return nil, nil
}

// Attributes returns a read-only View of all attributes under
// namespace. Unknown namespaces yield the shared EmptyView, never an
// error. The view is live: it observes later mutations of the map.
func (m *AttributeMap) Attributes(namespace string) (View, error) {
	if namespace == "" {
		return EmptyView, errEmptyNamespace
	}
	if m.singleton != "" && namespace == m.singleton {
		return View{attrs: m.content}, nil
	}
	if attrs, ok := m.overflow[namespace]; ok {
		return View{attrs: attrs}, nil
	}
	return EmptyView, nil
}

// Names returns every attribute name stored under namespace, in
// unspecified order. Unknown namespaces yield a nil slice.
func (m *AttributeMap) Names(namespace string) ([]string, error) {
	if namespace == "" {
		return nil, errEmptyNamespace
	}
	if m.singleton != "" && namespace == m.singleton {
		return attrNames(m.content), nil
	}
	if attrs, ok := m.overflow[namespace]; ok {
		return attrNames(attrs), nil
	}
	return nil, nil
}

// Namespaces returns every namespace known to the map, in unspecified
// order: the singleton namespace once adopted (even if all its
// attributes were since deleted) plus every overflow namespace. A map
// that has never stored a value yields a nil slice.
func (m *AttributeMap) Namespaces() []string {
	if m.singleton == "" {
		return nil
	}
	out := make([]string, 0, len(m.overflow)+1)
	out = append(out, m.singleton)
	for ns := range m.overflow {
		out = append(out, ns)
	}
	return out
}

// Merge unions other into m, destructively. Values from other win on
// (namespace, name) collisions. If m has never adopted a singleton
// namespace it adopts other's, deep-copying its content; everything
// else lands in m's existing tiers, allocating the overflow tier and
// inner maps as needed. A nil or empty other is a no-op.
func (m *AttributeMap) Merge(other *AttributeMap) {
	if other == nil || other.singleton == "" {
		return
	}

	if m.singleton == "" {
		m.singleton = other.singleton
		m.content = cloneAttrs(other.content)
	} else if m.singleton == other.singleton {
		for name, value := range other.content {
			m.content[name] = value
		}
	} else {
		m.mergeNamespace(other.singleton, other.content)
	}

	for ns, attrs := range other.overflow {
		// other never lists its own singleton here, but it may well
		// list ours.
		if ns == m.singleton {
			for name, value := range attrs {
				m.content[name] = value
			}
			continue
		}
		m.mergeNamespace(ns, attrs)
	}
}

func (m *AttributeMap) mergeNamespace(namespace string, attrs map[string]any) {
	if len(attrs) == 0 {
		return
	}
	if m.overflow == nil {
		m.overflow = make(map[string]map[string]any)
	}
	target, ok := m.overflow[namespace]
	if !ok {
		m.overflow[namespace] = cloneAttrs(attrs)
		return
	}
	for name, value := range attrs {
		target[name] = value
	}
}

// Equal reports whether m and other have identical internal structure:
// same singleton namespace, same singleton content, same overflow tier,
// compared field by field (a nil tier and an allocated-but-empty tier
// are distinct). Two maps holding the same logical attributes can
// compare unequal here if they adopted different singleton namespaces;
// use Equivalent for content-based comparison.
func (m *AttributeMap) Equal(other *AttributeMap) bool {
	if m == other {
		return true
	}
	if other == nil {
		return false
	}
	if m.singleton != other.singleton {
		return false
	}
	if (m.content == nil) != (other.content == nil) {
		return false
	}
	if !contentEqual(m.content, other.content) {
		return false
	}
	if (m.overflow == nil) != (other.overflow == nil) {
		return false
	}
	if len(m.overflow) != len(other.overflow) {
		return false
	}
	for ns, attrs := range m.overflow {
		oattrs, ok := other.overflow[ns]
		if !ok || !contentEqual(attrs, oattrs) {
			return false
		}
	}
	return true
}

// Equivalent reports whether m and other hold the same effective
// namespace -> name -> value content, regardless of which namespace
// occupies which tier or what operation history produced the maps.
// Namespaces holding no attributes are ignored.
func (m *AttributeMap) Equivalent(other *AttributeMap) bool {
	if m == other {
		return true
	}
	if other == nil {
		return false
	}
	if m.populatedNamespaces() != other.populatedNamespaces() {
		return false
	}
	if len(m.content) > 0 && !contentEqual(m.content, other.lookup(m.singleton)) {
		return false
	}
	for ns, attrs := range m.overflow {
		if !contentEqual(attrs, other.lookup(ns)) {
			return false
		}
	}
	return true
}

// Hash returns a hash consistent with Equal: equal maps hash equal. It
// combines the singleton namespace with the sorted name structure of
// both tiers; per-namespace digests are folded order-independently so
// map iteration order cannot leak into the result. Values do not
// participate (arbitrary values are not hashable), so maps differing
// only in values collide; Equal is the authority.
func (m *AttributeMap) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(m.singleton))
	for _, name := range sortedNames(m.content) {
		h.Write([]byte{0})
		h.Write([]byte(name))
	}
	sum := h.Sum64()
	for ns, attrs := range m.overflow {
		nh := fnv.New64a()
		nh.Write([]byte(ns))
		for _, name := range sortedNames(attrs) {
			nh.Write([]byte{0})
			nh.Write([]byte(name))
		}
		sum ^= nh.Sum64()
	}
	return sum
}

// Len returns the total number of attributes across all namespaces.
func (m *AttributeMap) Len() int {
	n := len(m.content)
	for _, attrs := range m.overflow {
		n += len(attrs)
	}
	return n
}

// IsEmpty reports whether the map holds no attributes. A map whose
// singleton namespace was adopted and then emptied is empty.
func (m *AttributeMap) IsEmpty() bool {
	return m.Len() == 0
}

// lookup returns the live inner map for namespace, or nil if the
// namespace holds nothing.
func (m *AttributeMap) lookup(namespace string) map[string]any {
	if m.singleton != "" && namespace == m.singleton {
		return m.content
	}
	return m.overflow[namespace]
}

// populatedNamespaces counts namespaces holding at least one attribute.
func (m *AttributeMap) populatedNamespaces() int {
	n := len(m.overflow)
	if len(m.content) > 0 {
		n++
	}
	return n
}

func cloneAttrs(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for name, value := range src {
		dst[name] = value
	}
	return dst
}

func contentEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for name, av := range a {
		bv, ok := b[name]
		if !ok || !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}

func attrNames(attrs map[string]any) []string {
	if len(attrs) == 0 {
		return nil
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	return names
}

func sortedNames(attrs map[string]any) []string {
	names := attrNames(attrs)
	sort.Strings(names)
	return names
}
