package match

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/mwantia/pathways/pkg/catalog"
	"github.com/mwantia/pathways/pkg/validation"
)

// Criteria field names accepted by CollegeCriteria.Set and Toggle.
const (
	FieldGPA           = "gpa"
	FieldSAT           = "sat"
	FieldBudget        = "budget"
	FieldAcceptanceMin = "acceptance_min"
	FieldAcceptanceMax = "acceptance_max"
	FieldTypes         = "types"
	FieldInterests     = "interests"
	FieldLocations     = "locations"
)

// MaxSAT is the top of the SAT scale.
const MaxSAT = 1600

// AcceptanceRange bounds the acceptance rate filter, both ends inclusive.
type AcceptanceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CollegeCriteria holds the college match filters of one session. Every field
// is optional: nil pointers and empty slices place no constraint.
type CollegeCriteria struct {
	GPA        *float64                  `json:"gpa,omitempty"`
	SAT        *int                      `json:"sat,omitempty"`
	Budget     *int                      `json:"budget,omitempty"`
	Acceptance *AcceptanceRange          `json:"acceptance,omitempty"`
	Types      []catalog.InstitutionType `json:"types,omitempty"`
	Interests  []string                  `json:"interests,omitempty"`
	Locations  []string                  `json:"locations,omitempty"`
}

// Clone returns a copy that shares no memory with c.
func (c CollegeCriteria) Clone() CollegeCriteria {
	out := CollegeCriteria{
		Types:     slices.Clone(c.Types),
		Interests: slices.Clone(c.Interests),
		Locations: slices.Clone(c.Locations),
	}
	if c.GPA != nil {
		v := *c.GPA
		out.GPA = &v
	}
	if c.SAT != nil {
		v := *c.SAT
		out.SAT = &v
	}
	if c.Budget != nil {
		v := *c.Budget
		out.Budget = &v
	}
	if c.Acceptance != nil {
		v := *c.Acceptance
		out.Acceptance = &v
	}
	return out
}

// Predicates turns the configured criteria into catalog predicates.
func (c CollegeCriteria) Predicates(tol Tolerances) []Predicate[catalog.College] {
	var preds []Predicate[catalog.College]

	if c.GPA != nil {
		preds = append(preds, AtLeastWithTolerance(*c.GPA, tol.GPA, func(col catalog.College) float64 {
			return col.AvgGPA
		}))
	}
	if c.SAT != nil {
		preds = append(preds, AtLeastWithTolerance(float64(*c.SAT), tol.Score, func(col catalog.College) float64 {
			return float64(col.AvgSAT)
		}))
	}
	if c.Budget != nil {
		preds = append(preds, AtMost(float64(*c.Budget), func(col catalog.College) float64 {
			return float64(col.Tuition)
		}))
	}
	if c.Acceptance != nil {
		preds = append(preds, InRange(c.Acceptance.Min, c.Acceptance.Max, func(col catalog.College) float64 {
			return col.AcceptanceRate
		}))
	}

	preds = append(preds,
		MemberOf(c.Types, func(col catalog.College) catalog.InstitutionType { return col.Type }),
		IntersectsAny(c.Interests, func(col catalog.College) []string { return col.Interests }),
		MemberOf(c.Locations, func(col catalog.College) string { return col.State }),
	)

	return preds
}

// MatchColleges filters the college catalog with the given criteria.
func MatchColleges(colleges *catalog.Catalog[catalog.College], c CollegeCriteria, tol Tolerances) Result[catalog.College] {
	return Filter(colleges.All(), c.Predicates(tol)...)
}

// Set parses and applies one field from user input. An empty value clears
// the field. On error the receiver is returned unchanged.
func (c CollegeCriteria) Set(field, value string) (CollegeCriteria, error) {
	next, err := c.setField(field, value)
	if err != nil {
		return c, err
	}
	if err := next.checkRange(field); err != nil {
		return c, err
	}
	return next.normalized(), nil
}

func (c CollegeCriteria) setField(field, value string) (CollegeCriteria, error) {
	next := c.Clone()
	value = strings.TrimSpace(value)

	switch field {
	case FieldGPA:
		v, err := parseOptionalFloat(field, value, 0, catalog.MaxGPA)
		if err != nil {
			return c, err
		}
		next.GPA = v
	case FieldSAT:
		v, err := parseOptionalInt(field, value, 0, MaxSAT)
		if err != nil {
			return c, err
		}
		next.SAT = v
	case FieldBudget:
		v, err := parseOptionalInt(field, value, 0, -1)
		if err != nil {
			return c, err
		}
		next.Budget = v
	case FieldAcceptanceMin, FieldAcceptanceMax:
		v, err := parseOptionalFloat(field, value, 0, 100)
		if err != nil {
			return c, err
		}
		rng := AcceptanceRange{Min: 0, Max: 100}
		if next.Acceptance != nil {
			rng = *next.Acceptance
		}
		switch {
		case v == nil && field == FieldAcceptanceMin:
			rng.Min = 0
		case v == nil:
			rng.Max = 100
		case field == FieldAcceptanceMin:
			rng.Min = *v
		default:
			rng.Max = *v
		}
		next.Acceptance = &rng
	case FieldTypes:
		types, err := parseTypes(splitList(value))
		if err != nil {
			return c, err
		}
		next.Types = types
	case FieldInterests:
		next.Interests = splitList(value)
	case FieldLocations:
		next.Locations = normalizeStates(splitList(value))
	default:
		return c, validation.FieldError{Field: field, Reason: "unknown criteria field"}
	}

	return next, nil
}

// Apply sets several fields at once. Either every field is applied or none is.
func (c CollegeCriteria) Apply(fields map[string]string) (CollegeCriteria, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	next := c
	var errs validation.Errors
	for _, k := range keys {
		updated, err := next.setField(k, fields[k])
		if err != nil {
			rejected, ok := validation.Fields(err)
			if !ok {
				return c, err
			}
			errs = append(errs, rejected...)
			continue
		}
		next = updated
	}

	if len(errs) == 0 {
		if err := next.checkRange(FieldAcceptanceMin); err != nil {
			return c, err
		}
	}
	if err := errs.Err(); err != nil {
		return c, err
	}
	return next.normalized(), nil
}

func (c CollegeCriteria) checkRange(field string) error {
	if c.Acceptance == nil || c.Acceptance.Min <= c.Acceptance.Max {
		return nil
	}
	return validation.FieldError{
		Field:  field,
		Reason: fmt.Sprintf("range minimum %.1f is above maximum %.1f", c.Acceptance.Min, c.Acceptance.Max),
	}
}

// normalized drops an acceptance range that covers the whole scale.
func (c CollegeCriteria) normalized() CollegeCriteria {
	if c.Acceptance != nil && c.Acceptance.Min == 0 && c.Acceptance.Max == 100 {
		c.Acceptance = nil
	}
	return c
}

// Toggle adds value to a set-valued field if absent and removes it if present.
func (c CollegeCriteria) Toggle(field, value string) (CollegeCriteria, error) {
	next := c.Clone()
	value = strings.TrimSpace(value)
	if value == "" {
		return c, validation.FieldError{Field: field, Reason: "value is required"}
	}

	switch field {
	case FieldTypes:
		t, err := catalog.ParseInstitutionType(value)
		if err != nil {
			return c, validation.FieldError{Field: field, Reason: err.Error()}
		}
		next.Types = toggle(next.Types, t)
	case FieldInterests:
		next.Interests = toggle(next.Interests, value)
	case FieldLocations:
		next.Locations = toggle(next.Locations, strings.ToUpper(value))
	default:
		return c, validation.FieldError{Field: field, Reason: "field is not a set"}
	}

	return next, nil
}

func toggle[K comparable](set []K, v K) []K {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(set, i, i+1)
	}
	return append(set, v)
}

func parseOptionalFloat(field, value string, lo, hi float64) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, validation.FieldError{Field: field, Reason: fmt.Sprintf("'%s' is not a number", value)}
	}
	if v < lo || v > hi {
		return nil, validation.FieldError{Field: field, Reason: fmt.Sprintf("%g outside [%g,%g]", v, lo, hi)}
	}
	return &v, nil
}

// parseOptionalInt treats a negative hi as "no upper bound".
func parseOptionalInt(field, value string, lo, hi int) (*int, error) {
	if value == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return nil, validation.FieldError{Field: field, Reason: fmt.Sprintf("'%s' is not a whole number", value)}
	}
	if v < lo || (hi >= 0 && v > hi) {
		return nil, validation.FieldError{Field: field, Reason: fmt.Sprintf("%d is out of range", v)}
	}
	return &v, nil
}

func parseTypes(values []string) ([]catalog.InstitutionType, error) {
	types := make([]catalog.InstitutionType, 0, len(values))
	for _, v := range values {
		t, err := catalog.ParseInstitutionType(v)
		if err != nil {
			return nil, validation.FieldError{Field: FieldTypes, Reason: err.Error()}
		}
		if !slices.Contains(types, t) {
			types = append(types, t)
		}
	}
	return types, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" && !slices.Contains(out, part) {
			out = append(out, part)
		}
	}
	return out
}

func normalizeStates(states []string) []string {
	for i, s := range states {
		states[i] = strings.ToUpper(s)
	}
	return states
}
