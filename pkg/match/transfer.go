package match

import (
	"slices"
	"strings"

	"github.com/mwantia/pathways/pkg/catalog"
	"github.com/mwantia/pathways/pkg/validation"
)

const (
	FieldMajors     = "majors"
	FieldAgreements = "agreements"
)

// TransferCriteria filters community college transfer programs.
type TransferCriteria struct {
	GPA        *float64                `json:"gpa,omitempty"`
	Majors     []string                `json:"majors,omitempty"`
	Agreements []catalog.AgreementType `json:"agreements,omitempty"`
}

func (c TransferCriteria) Clone() TransferCriteria {
	out := TransferCriteria{
		Majors:     slices.Clone(c.Majors),
		Agreements: slices.Clone(c.Agreements),
	}
	if c.GPA != nil {
		v := *c.GPA
		out.GPA = &v
	}
	return out
}

func (c TransferCriteria) Predicates() []Predicate[catalog.TransferProgram] {
	var preds []Predicate[catalog.TransferProgram]

	if c.GPA != nil {
		preds = append(preds, Within(*c.GPA, func(p catalog.TransferProgram) (float64, float64) {
			return p.MinGPA, p.MaxGPA
		}))
	}

	return append(preds,
		IntersectsAny(c.Majors, func(p catalog.TransferProgram) []string { return p.Majors }),
		MemberOf(c.Agreements, func(p catalog.TransferProgram) catalog.AgreementType { return p.Agreement }),
	)
}

// MatchPrograms filters the transfer catalog with the given criteria.
func MatchPrograms(programs *catalog.Catalog[catalog.TransferProgram], c TransferCriteria) Result[catalog.TransferProgram] {
	return Filter(programs.All(), c.Predicates()...)
}

// Set parses one transfer field. On error the receiver is returned unchanged.
func (c TransferCriteria) Set(field, value string) (TransferCriteria, error) {
	next := c.Clone()
	value = strings.TrimSpace(value)

	switch field {
	case FieldGPA:
		v, err := parseOptionalFloat(field, value, 0, catalog.MaxGPA)
		if err != nil {
			return c, err
		}
		next.GPA = v
	case FieldMajors:
		next.Majors = splitList(value)
	case FieldAgreements:
		var agreements []catalog.AgreementType
		for _, v := range splitList(value) {
			a, err := catalog.ParseAgreementType(v)
			if err != nil {
				return c, validation.FieldError{Field: field, Reason: err.Error()}
			}
			agreements = append(agreements, a)
		}
		next.Agreements = agreements
	default:
		return c, validation.FieldError{Field: field, Reason: "unknown criteria field"}
	}

	return next, nil
}

// Apply sets several transfer fields at once, all or nothing.
func (c TransferCriteria) Apply(fields map[string]string) (TransferCriteria, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	next := c
	var errs validation.Errors
	for _, k := range keys {
		updated, err := next.Set(k, fields[k])
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

	if err := errs.Err(); err != nil {
		return c, err
	}
	return next, nil
}
