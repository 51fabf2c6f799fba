package catalog

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when two entities of a catalog share an identifier.
var ErrDuplicateID = errors.New("duplicate entity id")

// Entity is implemented by every record a Catalog can hold.
// Clone must return a deep copy so callers can never reach catalog memory.
type Entity[T any] interface {
	EntityID() int
	Validate() error
	Clone() T
}

// Catalog is an immutable, ordered list of entities. The authoring order is
// significant: filtering and projection preserve it.
type Catalog[T Entity[T]] struct {
	items []T
	index map[int]int
}

// New builds a catalog from items in the given order and validates every entity.
func New[T Entity[T]](items []T) (*Catalog[T], error) {
	c := &Catalog[T]{
		items: make([]T, 0, len(items)),
		index: make(map[int]int, len(items)),
	}

	var errs []error
	for _, item := range items {
		id := item.EntityID()
		if _, exists := c.index[id]; exists {
			errs = append(errs, fmt.Errorf("%w: %d", ErrDuplicateID, id))
			continue
		}
		if err := item.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}

		c.index[id] = len(c.items)
		c.items = append(c.items, item.Clone())
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return c, nil
}

// All returns a copy of every entity in authoring order.
func (c *Catalog[T]) All() []T {
	out := make([]T, len(c.items))
	for i, item := range c.items {
		out[i] = item.Clone()
	}
	return out
}

// Get returns a copy of the entity with the given identifier.
func (c *Catalog[T]) Get(id int) (T, bool) {
	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i].Clone(), true
}

// Has reports whether id belongs to the catalog.
func (c *Catalog[T]) Has(id int) bool {
	_, ok := c.index[id]
	return ok
}

// IDs returns the identifiers in authoring order.
func (c *Catalog[T]) IDs() []int {
	ids := make([]int, len(c.items))
	for i, item := range c.items {
		ids[i] = item.EntityID()
	}
	return ids
}

func (c *Catalog[T]) Len() int {
	return len(c.items)
}
