// Package resource provides API resource transformers.
//
// A transformer controls exactly what JSON shape the API returns for a
// model:
//
//	item := resource.New(views.Item, menuItem)
//	list := resource.CollectionOf(views.Item, items).WithMeta(resource.Map{"total": len(items)})
//	c.Success(list)
package resource

import "encoding/json"

// Map is a convenient alias for ad-hoc JSON objects.
type Map = map[string]any

// Transformer converts one model into its API shape.
type Transformer[T, V any] func(T) V

// ------------------- Single resource -------------------

// Resource wraps a single model with its transformer.
type Resource[T, V any] struct {
	transform Transformer[T, V]
	data      T
}

// New creates a Resource for a single model instance.
func New[T, V any](t Transformer[T, V], data T) *Resource[T, V] {
	return &Resource[T, V]{transform: t, data: data}
}

// Value returns the transformed model.
func (r *Resource[T, V]) Value() V { return r.transform(r.data) }

// MarshalJSON implements json.Marshaler so a Resource can be nested.
func (r *Resource[T, V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}

// ------------------- Collection resource -------------------

// Collection wraps a slice of models with a transformer.
type Collection[T, V any] struct {
	transform Transformer[T, V]
	items     []T
	meta      Map
}

// CollectionOf creates a Collection from a slice.
func CollectionOf[T, V any](t Transformer[T, V], items []T) *Collection[T, V] {
	return &Collection[T, V]{transform: t, items: items}
}

// WithMeta attaches extra metadata.
func (c *Collection[T, V]) WithMeta(meta Map) *Collection[T, V] {
	c.meta = meta
	return c
}

// Values returns the transformed items, never nil.
func (c *Collection[T, V]) Values() []V {
	out := make([]V, len(c.items))
	for i, item := range c.items {
		out[i] = c.transform(item)
	}
	return out
}

// MarshalJSON renders a bare array, or {"items": [...], "meta": {...}} when
// metadata is attached.
func (c *Collection[T, V]) MarshalJSON() ([]byte, error) {
	if c.meta == nil {
		return json.Marshal(c.Values())
	}
	return json.Marshal(Map{"items": c.Values(), "meta": c.meta})
}
