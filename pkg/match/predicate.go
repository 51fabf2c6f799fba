package match

import "slices"

// epsilon absorbs binary rounding so bounds that are equal in decimal
// notation (3.76 >= 3.96 - 0.2) still compare as equal.
const epsilon = 1e-9

// Predicate reports whether an entity satisfies a single criterion.
// A nil Predicate is an unset criterion and is skipped by Filter.
type Predicate[T any] func(T) bool

// AtLeastWithTolerance passes entities whose reference value is at most
// tolerance above the user's value: user >= ref - tolerance.
func AtLeastWithTolerance[T any](user, tolerance float64, ref func(T) float64) Predicate[T] {
	return func(e T) bool {
		return user+epsilon >= ref(e)-tolerance
	}
}

// AtMost passes entities whose value does not exceed limit.
func AtMost[T any](limit float64, value func(T) float64) Predicate[T] {
	return func(e T) bool {
		return value(e) <= limit+epsilon
	}
}

// InRange passes entities whose value lies in [lo, hi], both bounds inclusive.
func InRange[T any](lo, hi float64, value func(T) float64) Predicate[T] {
	return func(e T) bool {
		v := value(e)
		return v+epsilon >= lo && v <= hi+epsilon
	}
}

// Within passes entities whose own [lo, hi] bounds contain the user's value.
func Within[T any](user float64, bounds func(T) (lo, hi float64)) Predicate[T] {
	return func(e T) bool {
		lo, hi := bounds(e)
		return user+epsilon >= lo && user <= hi+epsilon
	}
}

// MemberOf passes entities whose key is one of selected. An empty selection
// places no constraint on the dimension.
func MemberOf[T any, K comparable](selected []K, key func(T) K) Predicate[T] {
	if len(selected) == 0 {
		return nil
	}

	set := make(map[K]struct{}, len(selected))
	for _, k := range selected {
		set[k] = struct{}{}
	}

	return func(e T) bool {
		_, ok := set[key(e)]
		return ok
	}
}

// IntersectsAny passes entities that carry at least one of the selected tags.
// An empty selection places no constraint on the dimension.
func IntersectsAny[T any, K comparable](selected []K, tags func(T) []K) Predicate[T] {
	if len(selected) == 0 {
		return nil
	}

	return func(e T) bool {
		return slices.ContainsFunc(tags(e), func(tag K) bool {
			return slices.Contains(selected, tag)
		})
	}
}
