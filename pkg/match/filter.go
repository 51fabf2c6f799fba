package match

// Result is the filtered view of a catalog.
type Result[T any] struct {
	Items []T `json:"items"`
	// Total is the number of entities the filter looked at.
	Total int `json:"total"`
	// Constrained is false when no predicate was configured, which tells
	// "nothing filtered" apart from "everything filtered out".
	Constrained bool `json:"constrained"`
}

// Matched returns the number of entities that passed.
func (r Result[T]) Matched() int {
	return len(r.Items)
}

// NoMatches reports the "no matches" state: constraints applied, nothing left.
func (r Result[T]) NoMatches() bool {
	return r.Constrained && len(r.Items) == 0
}

// Filter keeps the entities that satisfy every configured predicate, in input order.
func Filter[T any](entities []T, predicates ...Predicate[T]) Result[T] {
	active := make([]Predicate[T], 0, len(predicates))
	for _, p := range predicates {
		if p != nil {
			active = append(active, p)
		}
	}

	items := make([]T, 0, len(entities))
	for _, e := range entities {
		if matchesAll(e, active) {
			items = append(items, e)
		}
	}

	return Result[T]{
		Items:       items,
		Total:       len(entities),
		Constrained: len(active) > 0,
	}
}

func matchesAll[T any](e T, predicates []Predicate[T]) bool {
	for _, p := range predicates {
		if !p(e) {
			return false
		}
	}
	return true
}
