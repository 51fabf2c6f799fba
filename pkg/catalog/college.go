package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// InstitutionType is the ownership category of a college.
type InstitutionType string

const (
	Public  InstitutionType = "Public"
	Private InstitutionType = "Private"
)

// InstitutionTypes lists every known type in display order.
func InstitutionTypes() []InstitutionType {
	return []InstitutionType{Public, Private}
}

// ParseInstitutionType accepts the type name case-insensitively.
func ParseInstitutionType(s string) (InstitutionType, error) {
	for _, t := range InstitutionTypes() {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown institution type '%s'", s)
}

// College is a single entry of the college match catalog.
type College struct {
	ID             int             `json:"id"              yaml:"id"`
	Name           string          `json:"name"            yaml:"name"`
	Location       string          `json:"location"        yaml:"location"`
	State          string          `json:"state"           yaml:"state"`
	Type           InstitutionType `json:"type"            yaml:"type"`
	AvgGPA         float64         `json:"avg_gpa"         yaml:"avg_gpa"`
	AvgSAT         int             `json:"avg_sat"         yaml:"avg_sat"`
	Tuition        int             `json:"tuition"         yaml:"tuition"`
	AcceptanceRate float64         `json:"acceptance_rate" yaml:"acceptance_rate"`
	Interests      []string        `json:"interests"       yaml:"interests"`
	Ranking        int             `json:"ranking"         yaml:"ranking"`
	NeedBlind      bool            `json:"need_blind"      yaml:"need_blind"`
}

func (c College) EntityID() int {
	return c.ID
}

func (c College) Clone() College {
	c.Interests = slices.Clone(c.Interests)
	return c
}

// Validate checks the numeric ranges every college record must respect.
func (c College) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("college %d: name is required", c.ID)
	case c.Type != Public && c.Type != Private:
		return fmt.Errorf("college %d: unknown type '%s'", c.ID, c.Type)
	case c.AvgGPA < 0 || c.AvgGPA > MaxGPA:
		return fmt.Errorf("college %d: average gpa %.2f outside [0,%.1f]", c.ID, c.AvgGPA, MaxGPA)
	case c.AvgSAT < 0:
		return fmt.Errorf("college %d: average sat %d is negative", c.ID, c.AvgSAT)
	case c.Tuition < 0:
		return fmt.Errorf("college %d: tuition %d is negative", c.ID, c.Tuition)
	case c.AcceptanceRate < 0 || c.AcceptanceRate > 100:
		return fmt.Errorf("college %d: acceptance rate %.1f outside [0,100]", c.ID, c.AcceptanceRate)
	case c.Ranking < 0:
		return fmt.Errorf("college %d: ranking %d is negative", c.ID, c.Ranking)
	}
	return nil
}

// MaxGPA is the upper bound of the unweighted GPA scale.
const MaxGPA = 4.0
