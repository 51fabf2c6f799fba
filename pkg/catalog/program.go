package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// AgreementType classifies the transfer agreement behind a program.
type AgreementType string

const (
	AgreementTAG          AgreementType = "TAG"
	AgreementTAP          AgreementType = "TAP"
	AgreementArticulation AgreementType = "Articulation"
	AgreementGuarantee    AgreementType = "Guarantee"
)

func AgreementTypes() []AgreementType {
	return []AgreementType{AgreementTAG, AgreementTAP, AgreementArticulation, AgreementGuarantee}
}

func ParseAgreementType(s string) (AgreementType, error) {
	for _, t := range AgreementTypes() {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown agreement type '%s'", s)
}

// TransferPartner is a four-year school reachable from a community college program.
type TransferPartner struct {
	Name           string  `json:"name"            yaml:"name"`
	AcceptanceRate float64 `json:"acceptance_rate" yaml:"acceptance_rate"`
}

// TransferProgram is a community college pathway into one or more universities.
type TransferProgram struct {
	ID             int               `json:"id"              yaml:"id"`
	CollegeName    string            `json:"college_name"    yaml:"college_name"`
	Partners       []TransferPartner `json:"partners"        yaml:"partners"`
	Credits        int               `json:"credits"         yaml:"credits"`
	MinGPA         float64           `json:"min_gpa"         yaml:"min_gpa"`
	MaxGPA         float64           `json:"max_gpa"         yaml:"max_gpa"`
	Articulation   string            `json:"articulation"    yaml:"articulation"`
	Majors         []string          `json:"majors"          yaml:"majors"`
	CompletionTime string            `json:"completion_time" yaml:"completion_time"`
	Agreement      AgreementType     `json:"agreement"       yaml:"agreement"`
}

func (p TransferProgram) EntityID() int {
	return p.ID
}

func (p TransferProgram) Clone() TransferProgram {
	p.Partners = slices.Clone(p.Partners)
	p.Majors = slices.Clone(p.Majors)
	return p
}

func (p TransferProgram) Validate() error {
	switch {
	case p.CollegeName == "":
		return fmt.Errorf("program %d: college name is required", p.ID)
	case p.Credits < 0:
		return fmt.Errorf("program %d: credits %d is negative", p.ID, p.Credits)
	case p.MinGPA < 0 || p.MinGPA > MaxGPA:
		return fmt.Errorf("program %d: min gpa %.2f outside [0,%.1f]", p.ID, p.MinGPA, MaxGPA)
	case p.MaxGPA < 0 || p.MaxGPA > MaxGPA:
		return fmt.Errorf("program %d: max gpa %.2f outside [0,%.1f]", p.ID, p.MaxGPA, MaxGPA)
	case p.MinGPA > p.MaxGPA:
		return fmt.Errorf("program %d: min gpa %.2f above max gpa %.2f", p.ID, p.MinGPA, p.MaxGPA)
	}

	for _, partner := range p.Partners {
		if partner.AcceptanceRate < 0 || partner.AcceptanceRate > 100 {
			return fmt.Errorf("program %d: partner '%s' acceptance rate %.1f outside [0,100]",
				p.ID, partner.Name, partner.AcceptanceRate)
		}
	}
	return nil
}
