package catalog

import "fmt"

// Colleges builds the compiled-in college catalog.
func Colleges() *Catalog[College] {
	return mustNew(collegeData())
}

// Programs builds the compiled-in transfer program catalog.
func Programs() *Catalog[TransferProgram] {
	return mustNew(programData())
}

func mustNew[T Entity[T]](items []T) *Catalog[T] {
	c, err := New(items)
	if err != nil {
		panic(fmt.Sprintf("compiled-in catalog is invalid: %v", err))
	}
	return c
}

func collegeData() []College {
	return []College{
		{
			ID: 1, Name: "Stanford University", Location: "Stanford", State: "CA", Type: Private,
			AvgGPA: 3.96, AvgSAT: 1520, Tuition: 60000, AcceptanceRate: 3.3,
			Interests: []string{"STEM", "Engineering", "Liberal Arts"}, Ranking: 4, NeedBlind: true,
		},
		{
			ID: 2, Name: "MIT", Location: "Cambridge", State: "MA", Type: Private,
			AvgGPA: 3.98, AvgSAT: 1540, Tuition: 60000, AcceptanceRate: 2.7,
			Interests: []string{"STEM", "Engineering", "Research"}, Ranking: 1, NeedBlind: true,
		},
		{
			ID: 3, Name: "University of Michigan", Location: "Ann Arbor", State: "MI", Type: Public,
			AvgGPA: 3.86, AvgSAT: 1510, Tuition: 32000, AcceptanceRate: 16.5,
			Interests: []string{"Engineering", "Business", "STEM"}, Ranking: 25, NeedBlind: false,
		},
		{
			ID: 4, Name: "UC Berkeley", Location: "Berkeley", State: "CA", Type: Public,
			AvgGPA: 3.88, AvgSAT: 1530, Tuition: 45000, AcceptanceRate: 7.3,
			Interests: []string{"STEM", "Engineering", "Research"}, Ranking: 15, NeedBlind: false,
		},
		{
			ID: 5, Name: "Duke University", Location: "Durham", State: "NC", Type: Private,
			AvgGPA: 3.95, AvgSAT: 1510, Tuition: 60000, AcceptanceRate: 4.3,
			Interests: []string{"STEM", "Business", "Liberal Arts"}, Ranking: 10, NeedBlind: true,
		},
		{
			ID: 6, Name: "Cornell University", Location: "Ithaca", State: "NY", Type: Private,
			AvgGPA: 3.92, AvgSAT: 1520, Tuition: 60000, AcceptanceRate: 7.0,
			Interests: []string{"Engineering", "STEM", "Agriculture"}, Ranking: 12, NeedBlind: true,
		},
		{
			ID: 7, Name: "Harvard University", Location: "Cambridge", State: "MA", Type: Private,
			AvgGPA: 3.98, AvgSAT: 1530, Tuition: 60000, AcceptanceRate: 3.0,
			Interests: []string{"Liberal Arts", "Law", "Business"}, Ranking: 2, NeedBlind: true,
		},
		{
			ID: 8, Name: "University of Texas at Austin", Location: "Austin", State: "TX", Type: Public,
			AvgGPA: 3.84, AvgSAT: 1480, Tuition: 28000, AcceptanceRate: 18.2,
			Interests: []string{"Engineering", "Business", "STEM"}, Ranking: 38, NeedBlind: false,
		},
		{
			ID: 9, Name: "Northwestern University", Location: "Evanston", State: "IL", Type: Private,
			AvgGPA: 3.96, AvgSAT: 1510, Tuition: 62000, AcceptanceRate: 6.2,
			Interests: []string{"Business", "Engineering", "Journalism"}, Ranking: 9, NeedBlind: true,
		},
		{
			ID: 10, Name: "University of Pennsylvania", Location: "Philadelphia", State: "PA", Type: Private,
			AvgGPA: 3.95, AvgSAT: 1520, Tuition: 61000, AcceptanceRate: 3.2,
			Interests: []string{"Business", "Engineering", "Medicine"}, Ranking: 6, NeedBlind: true,
		},
	}
}

func programData() []TransferProgram {
	return []TransferProgram{
		{
			ID:          1,
			CollegeName: "Foothill College",
			Partners: []TransferPartner{
				{Name: "UC Berkeley", AcceptanceRate: 8},
				{Name: "Stanford", AcceptanceRate: 3},
				{Name: "San Jose State", AcceptanceRate: 45},
			},
			Credits:        60,
			MinGPA:         2.8,
			MaxGPA:         4.0,
			Articulation:   "Cal State Transfer Pathway",
			Majors:         []string{"Computer Science", "Engineering", "Mathematics", "Physics"},
			CompletionTime: "2 years",
			Agreement:      AgreementTAG,
		},
		{
			ID:          2,
			CollegeName: "De Anza College",
			Partners: []TransferPartner{
				{Name: "UCLA", AcceptanceRate: 12},
				{Name: "UC San Diego", AcceptanceRate: 28},
				{Name: "USC", AcceptanceRate: 15},
			},
			Credits:        60,
			MinGPA:         2.9,
			MaxGPA:         4.0,
			Articulation:   "UC Transfer Admission Guarantee",
			Majors:         []string{"Business", "Engineering", "Biological Sciences", "Computer Science"},
			CompletionTime: "2 years",
			Agreement:      AgreementTAG,
		},
		{
			ID:          3,
			CollegeName: "Santa Monica College",
			Partners: []TransferPartner{
				{Name: "UCLA", AcceptanceRate: 11},
				{Name: "USC", AcceptanceRate: 16},
				{Name: "Pepperdine", AcceptanceRate: 33},
			},
			Credits:        60,
			MinGPA:         2.7,
			MaxGPA:         4.0,
			Articulation:   "Transfer Alliance Program",
			Majors:         []string{"Liberal Arts", "Biological Sciences", "Business Administration"},
			CompletionTime: "2 years",
			Agreement:      AgreementTAP,
		},
		{
			ID:          4,
			CollegeName: "Diablo Valley College",
			Partners: []TransferPartner{
				{Name: "UC Davis", AcceptanceRate: 38},
				{Name: "UC Irvine", AcceptanceRate: 22},
				{Name: "Cal Poly San Luis Obispo", AcceptanceRate: 26},
			},
			Credits:        60,
			MinGPA:         3.0,
			MaxGPA:         4.0,
			Articulation:   "UC Transfer Pathway",
			Majors:         []string{"Engineering", "Agriculture", "Life Sciences"},
			CompletionTime: "2 years",
			Agreement:      AgreementGuarantee,
		},
	}
}
