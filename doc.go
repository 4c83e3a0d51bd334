// Package attrmap provides a namespace-qualified attribute container for
// document-processing pipelines.
//
// # Overview
//
// attrmap stores (namespace, name) -> value pairs so the same local
// attribute name can coexist under different namespaces without collision.
// Most real documents only ever touch a single namespace per map, so the
// container keeps a dedicated fast slot for the first namespace written
// and falls back to a lazily allocated map-of-maps once a second
// namespace appears. To callers both tiers behave as one flat map.
//
// # Quick Start
//
//	m := attrmap.New()
//
//	// Basic operations
//	m.Set("http://example.com/ns", "id", "n42")
//	v, _ := m.Get("http://example.com/ns", "id")
//
//	// Storing nil deletes
//	m.Set("http://example.com/ns", "id", nil)
//
//	// Read-only per-namespace views
//	attrs, _ := m.Attributes("http://example.com/ns")
//	attrs.Range(func(name string, value any) bool {
//		// ...
//		return true
//	})
//
// # Storage Tiers
//
// The first namespace written becomes the singleton namespace for the
// lifetime of the map; later namespaces land in the overflow tier.
// Adoption is permanent: deleting every attribute of the singleton
// namespace does not free the slot for another namespace. Overflow
// namespaces, by contrast, disappear as soon as their last attribute is
// removed. Iteration order over namespaces and names is unspecified.
//
// # Thread Safety
//
// AttributeMap is not safe for concurrent mutation. It is designed for
// single-owner, single-threaded use; callers that share a map across
// goroutines must synchronize externally. Read operations are pure.
//
// # Error Handling
//
// The only failure mode is a precondition violation: passing an empty
// namespace or attribute name fails with ErrInvalidArgument before any
// state is touched.
//
//	_, err := m.Get("", "id")
//	if errors.Is(err, attrmap.ErrInvalidArgument) {
//		// caller bug
//	}
//
// Looking up a well-formed but unknown namespace or name is not an
// error; it simply returns nil.
package attrmap
