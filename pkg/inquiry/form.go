package inquiry

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/mwantia/pathways/pkg/validation"
)

type Grade string

const (
	Grade9th      Grade = "9th"
	Grade10th     Grade = "10th"
	Grade11th     Grade = "11th"
	Grade12th     Grade = "12th"
	GradeGapYear  Grade = "gap-year"
	GradeTransfer Grade = "transfer"
)

func Grades() []Grade {
	return []Grade{Grade9th, Grade10th, Grade11th, Grade12th, GradeGapYear, GradeTransfer}
}

func ParseGrade(s string) (Grade, error) {
	for _, g := range Grades() {
		if strings.EqualFold(s, string(g)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown student grade '%s'", s)
}

// Form is the consultation request as entered by the visitor.
type Form struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	StudentGrade   string `json:"student_grade"`
	TargetSchools  string `json:"target_schools,omitempty"`
	Message        string `json:"message,omitempty"`
	AgreeToContact bool   `json:"agree_to_contact"`
}

const phonePattern = `^\+?[0-9 ().-]{7,25}$`

// Normalize trims every text field and lowercases the email address.
func (f Form) Normalize() Form {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Phone = strings.TrimSpace(f.Phone)
	f.StudentGrade = strings.TrimSpace(f.StudentGrade)
	f.TargetSchools = strings.TrimSpace(f.TargetSchools)
	f.Message = strings.TrimSpace(f.Message)
	return f
}

// Validate reports every rejected field at once.
func (f Form) Validate() error {
	var errs validation.Errors

	requireText(&errs, "first_name", f.FirstName, 100)
	requireText(&errs, "last_name", f.LastName, 100)

	switch {
	case f.Email == "":
		errs.Add("email", "is required")
	case !govalidator.StringLength(f.Email, "3", "255") || !govalidator.IsEmail(f.Email):
		errs.Add("email", "must be a valid email address")
	}

	switch {
	case f.Phone == "":
		errs.Add("phone", "is required")
	case !govalidator.Matches(f.Phone, phonePattern):
		errs.Add("phone", "must be a valid phone number")
	}

	if f.StudentGrade == "" {
		errs.Add("student_grade", "is required")
	} else if _, err := ParseGrade(f.StudentGrade); err != nil {
		errs.Add("student_grade", "must be one of 9th, 10th, 11th, 12th, gap-year, transfer")
	}

	if !govalidator.StringLength(f.TargetSchools, "0", "500") {
		errs.Add("target_schools", "must be at most 500 characters")
	}
	if !govalidator.StringLength(f.Message, "0", "5000") {
		errs.Add("message", "must be at most 5000 characters")
	}
	if !f.AgreeToContact {
		errs.Add("agree_to_contact", "must be accepted")
	}

	return errs.Err()
}

func requireText(errs *validation.Errors, field, value string, max int) {
	if value == "" {
		errs.Add(field, "is required")
		return
	}
	if !govalidator.StringLength(value, "1", fmt.Sprint(max)) {
		errs.Add(field, "must be at most %d characters", max)
	}
}
