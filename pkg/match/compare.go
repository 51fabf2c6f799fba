package match

import (
	"errors"
	"fmt"

	"github.com/mwantia/pathways/pkg/catalog"
)

// ErrEmptySelection is returned when a comparison is requested without any selected entity.
var ErrEmptySelection = errors.New("selection is empty")

// Selected returns the catalog entities contained in sel, in catalog order.
// Ids that are not part of the catalog are ignored.
func Selected[T catalog.Entity[T]](cat *catalog.Catalog[T], sel SelectionSet) []T {
	out := make([]T, 0, sel.Len())
	for _, e := range cat.All() {
		if sel.Contains(e.EntityID()) {
			out = append(out, e)
		}
	}
	return out
}

// ComparisonField names one row of the comparison matrix.
type ComparisonField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// CollegeComparisonFields are the rows shown when comparing colleges side by side.
var CollegeComparisonFields = []ComparisonField{
	{Key: "name", Label: "Name"},
	{Key: "location", Label: "Location"},
	{Key: "type", Label: "Type"},
	{Key: "ranking", Label: "Ranking"},
	{Key: "avg_gpa", Label: "Avg GPA"},
	{Key: "avg_sat", Label: "Avg SAT"},
	{Key: "acceptance_rate", Label: "Acceptance Rate"},
	{Key: "tuition", Label: "Tuition"},
	{Key: "need_blind", Label: "Need-Blind"},
}

// ComparisonRow holds one field's value for every compared college, column by column.
type ComparisonRow struct {
	Field  ComparisonField `json:"field"`
	Values []any           `json:"values"`
}

// Comparison is the side-by-side matrix of the selected colleges.
type Comparison struct {
	Columns []int             `json:"columns"`
	Rows    []ComparisonRow   `json:"rows"`
	Items   []catalog.College `json:"items"`
}

// Project builds the comparison matrix for the selected colleges. Columns
// follow catalog order, not the order in which colleges were selected.
func Project(colleges *catalog.Catalog[catalog.College], sel SelectionSet) (Comparison, error) {
	if sel.Empty() {
		return Comparison{}, ErrEmptySelection
	}

	items := Selected(colleges, sel)
	if len(items) == 0 {
		return Comparison{}, fmt.Errorf("%w: none of %v is in the catalog", ErrEmptySelection, sel.IDs())
	}

	out := Comparison{
		Columns: make([]int, len(items)),
		Rows:    make([]ComparisonRow, len(CollegeComparisonFields)),
		Items:   items,
	}
	for i, c := range items {
		out.Columns[i] = c.ID
	}

	for r, field := range CollegeComparisonFields {
		row := ComparisonRow{Field: field, Values: make([]any, len(items))}
		for i, c := range items {
			row.Values[i] = comparisonValue(c, field.Key)
		}
		out.Rows[r] = row
	}

	return out, nil
}

func comparisonValue(c catalog.College, key string) any {
	switch key {
	case "name":
		return c.Name
	case "location":
		return fmt.Sprintf("%s, %s", c.Location, c.State)
	case "type":
		return c.Type
	case "ranking":
		return c.Ranking
	case "avg_gpa":
		return c.AvgGPA
	case "avg_sat":
		return c.AvgSAT
	case "acceptance_rate":
		return c.AcceptanceRate
	case "tuition":
		return c.Tuition
	case "need_blind":
		return c.NeedBlind
	}
	return nil
}
