package match

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwantia/pathways/pkg/catalog"
)

func ptr[T any](v T) *T {
	return &v
}

func ids(colleges []catalog.College) []int {
	out := make([]int, len(colleges))
	for i, c := range colleges {
		out[i] = c.ID
	}
	return out
}

func TestFilterWithoutCriteriaReturnsCatalog(t *testing.T) {
	colleges := catalog.Colleges()

	result := MatchColleges(colleges, CollegeCriteria{}, DefaultTolerances())

	if diff := cmp.Diff(colleges.All(), result.Items); diff != "" {
		t.Fatalf("unfiltered result differs from catalog (-want +got):\n%s", diff)
	}
	assert.False(t, result.Constrained)
	assert.Equal(t, 10, result.Total)
	assert.Equal(t, 10, result.Matched())
}

func TestFilterBudgetExample(t *testing.T) {
	small, err := catalog.New([]catalog.College{
		{ID: 1, Name: "One", Type: catalog.Private, Tuition: 60000, AcceptanceRate: 3.3},
		{ID: 2, Name: "Two", Type: catalog.Public, Tuition: 32000, AcceptanceRate: 16.5},
	})
	require.NoError(t, err)

	result := MatchColleges(small, CollegeCriteria{Budget: ptr(40000)}, DefaultTolerances())

	assert.Equal(t, []int{2}, ids(result.Items))
	assert.True(t, result.Constrained)
}

func TestToleranceBoundaryIsInclusive(t *testing.T) {
	ref := func(c catalog.College) float64 { return c.AvgGPA }
	college := catalog.College{AvgGPA: 3.96}

	assert.True(t, AtLeastWithTolerance(3.76, 0.2, ref)(college), "exactly at the boundary passes")
	assert.True(t, AtLeastWithTolerance(3.80, 0.2, ref)(college))
	assert.False(t, AtLeastWithTolerance(3.75, 0.2, ref)(college))

	score := func(c catalog.College) float64 { return float64(c.AvgSAT) }
	mit := catalog.College{AvgSAT: 1540}
	assert.True(t, AtLeastWithTolerance(1440, 100, score)(mit))
	assert.False(t, AtLeastWithTolerance(1439, 100, score)(mit))
}

func TestRangeIsInclusive(t *testing.T) {
	rate := func(c catalog.College) float64 { return c.AcceptanceRate }
	pred := InRange(3.3, 7.3, rate)

	assert.True(t, pred(catalog.College{AcceptanceRate: 3.3}))
	assert.True(t, pred(catalog.College{AcceptanceRate: 7.3}))
	assert.False(t, pred(catalog.College{AcceptanceRate: 7.4}))
	assert.False(t, pred(catalog.College{AcceptanceRate: 3.2}))
}

func TestEmptySetSelectionsDoNotFilter(t *testing.T) {
	colleges := catalog.Colleges()

	criteria := CollegeCriteria{
		Types:     []catalog.InstitutionType{},
		Interests: []string{},
		Locations: nil,
	}
	result := MatchColleges(colleges, criteria, DefaultTolerances())

	assert.Equal(t, colleges.Len(), result.Matched())
	assert.False(t, result.Constrained)
	assert.Nil(t, MemberOf([]string{}, func(c catalog.College) string { return c.State }))
}

func TestSetPredicates(t *testing.T) {
	colleges := catalog.Colleges()
	tol := DefaultTolerances()

	public := MatchColleges(colleges, CollegeCriteria{Types: []catalog.InstitutionType{catalog.Public}}, tol)
	assert.Equal(t, []int{3, 4, 8}, ids(public.Items))

	law := MatchColleges(colleges, CollegeCriteria{Interests: []string{"Law", "Journalism"}}, tol)
	assert.Equal(t, []int{7, 9}, ids(law.Items))

	massachusetts := MatchColleges(colleges, CollegeCriteria{Locations: []string{"MA", "TX"}}, tol)
	assert.Equal(t, []int{2, 7, 8}, ids(massachusetts.Items))
}

func TestCombinedCriteriaUseLogicalAnd(t *testing.T) {
	colleges := catalog.Colleges()

	criteria := CollegeCriteria{
		GPA:       ptr(3.8),
		SAT:       ptr(1450),
		Budget:    ptr(60000),
		Types:     []catalog.InstitutionType{catalog.Public, catalog.Private},
		Interests: []string{"STEM"},
	}
	result := MatchColleges(colleges, criteria, DefaultTolerances())

	// Every STEM school within 0.2 GPA, 100 SAT and 60k tuition.
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 8}, ids(result.Items))
}

func TestNoMatchesIsDistinctFromUnfiltered(t *testing.T) {
	colleges := catalog.Colleges()

	result := MatchColleges(colleges, CollegeCriteria{Budget: ptr(1000)}, DefaultTolerances())

	assert.Empty(t, result.Items)
	assert.True(t, result.NoMatches())
	assert.Equal(t, 10, result.Total)
}

func TestTolerancesAreConfigurable(t *testing.T) {
	colleges := catalog.Colleges()
	strict := Tolerances{GPA: 0, Score: 0}

	result := MatchColleges(colleges, CollegeCriteria{GPA: ptr(3.9)}, strict)

	assert.Equal(t, []int{3, 4, 8}, ids(result.Items))
}

func TestMatchPrograms(t *testing.T) {
	programs := catalog.Programs()

	all := MatchPrograms(programs, TransferCriteria{GPA: ptr(3.0)})
	assert.Len(t, all.Items, 4)

	lowGPA := MatchPrograms(programs, TransferCriteria{GPA: ptr(2.85)})
	var got []int
	for _, p := range lowGPA.Items {
		got = append(got, p.ID)
	}
	assert.Equal(t, []int{1, 3}, got)

	majors := MatchPrograms(programs, TransferCriteria{Majors: []string{"Agriculture"}})
	require.Len(t, majors.Items, 1)
	assert.Equal(t, "Diablo Valley College", majors.Items[0].CollegeName)

	tap := MatchPrograms(programs, TransferCriteria{Agreements: []catalog.AgreementType{catalog.AgreementTAP}})
	require.Len(t, tap.Items, 1)
	assert.Equal(t, 3, tap.Items[0].ID)
}
