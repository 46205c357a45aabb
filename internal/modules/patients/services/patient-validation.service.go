package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"clinic-core/internal/modules/patients/dto"
	"clinic-core/internal/shared/apperrors"
)

// Field length bounds for the patient schema.
const (
	NameMinLen    = 2
	NameMaxLen    = 50
	PhoneMinLen   = 7
	PhoneMaxLen   = 20
	AddressMinLen = 10
	AddressMaxLen = 200
	MaritalMaxLen = 50
	OccupMaxLen   = 100
	NoteTitleMax  = 100
	NoteBodyMax   = 1000
	MaxAgeYears   = 150
)

// PatientValidationService holds the pure field-level validation rules.
// Every check returns the full list of violations so callers can aggregate
// them into a single ValidationError.
type PatientValidationService struct {
	nameRegex  *regexp.Regexp
	phoneRegex *regexp.Regexp
}

// NewPatientValidationService creates a new validation service.
func NewPatientValidationService() *PatientValidationService {
	return &PatientValidationService{
		// Letters (including accented Latin), spaces, and hyphens
		nameRegex: regexp.MustCompile(`^[\p{Latin} -]+$`),
		// Digits, spaces, hyphens, parentheses, plus sign
		phoneRegex: regexp.MustCompile(`^[0-9 ()+\-]+$`),
	}
}

// ValidateCreate checks every required field plus the optional fields that
// are present.
func (s *PatientValidationService) ValidateCreate(req *dto.CreatePatientRequest) []apperrors.FieldError {
	var errs []apperrors.FieldError

	errs = append(errs, s.ValidateName("firstName", req.FirstName)...)
	errs = append(errs, s.ValidateName("lastName", req.LastName)...)
	errs = append(errs, s.ValidatePhone(req.Phone)...)
	errs = append(errs, s.ValidateGender(req.Gender)...)

	if req.Address != nil {
		errs = append(errs, s.ValidateAddress(*req.Address)...)
	}
	if req.BirthDate != nil {
		errs = append(errs, s.ValidateBirthDate(*req.BirthDate)...)
	}
	if req.MaritalStatus != nil {
		errs = append(errs, s.validateMaxLen("maritalStatus", *req.MaritalStatus, MaritalMaxLen)...)
	}
	if req.Occupation != nil {
		errs = append(errs, s.validateMaxLen("occupation", *req.Occupation, OccupMaxLen)...)
	}
	errs = append(errs, s.ValidateVaccination(req.Vaccination)...)

	for _, note := range req.Notes {
		errs = append(errs, s.ValidateNote(note.Title, note.Content)...)
	}

	return errs
}

// ValidateUpdate checks only the fields present in the partial payload.
func (s *PatientValidationService) ValidateUpdate(req *dto.UpdatePatientRequest) []apperrors.FieldError {
	var errs []apperrors.FieldError

	if req.FirstName != nil {
		errs = append(errs, s.ValidateName("firstName", *req.FirstName)...)
	}
	if req.LastName != nil {
		errs = append(errs, s.ValidateName("lastName", *req.LastName)...)
	}
	if req.Phone != nil {
		errs = append(errs, s.ValidatePhone(*req.Phone)...)
	}
	if req.Gender != nil {
		errs = append(errs, s.ValidateGender(*req.Gender)...)
	}
	if req.Address != nil {
		errs = append(errs, s.ValidateAddress(*req.Address)...)
	}
	if req.BirthDate != nil {
		errs = append(errs, s.ValidateBirthDate(*req.BirthDate)...)
	}
	if req.MaritalStatus != nil {
		errs = append(errs, s.validateMaxLen("maritalStatus", *req.MaritalStatus, MaritalMaxLen)...)
	}
	if req.Occupation != nil {
		errs = append(errs, s.validateMaxLen("occupation", *req.Occupation, OccupMaxLen)...)
	}
	if req.Vaccination != nil {
		errs = append(errs, s.ValidateVaccination(*req.Vaccination)...)
	}

	return errs
}

// ValidateName checks the [2,50] length and character set of a name field.
func (s *PatientValidationService) ValidateName(field, value string) []apperrors.FieldError {
	value = strings.TrimSpace(value)

	if len([]rune(value)) < NameMinLen || len([]rune(value)) > NameMaxLen {
		return []apperrors.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("Must be between %d and %d characters", NameMinLen, NameMaxLen),
		}}
	}
	if !s.nameRegex.MatchString(value) {
		return []apperrors.FieldError{{
			Field:   field,
			Message: "Contains invalid characters",
		}}
	}
	return nil
}

// ValidatePhone checks the [7,20] length and character set of a phone number.
func (s *PatientValidationService) ValidatePhone(value string) []apperrors.FieldError {
	value = strings.TrimSpace(value)

	if len(value) < PhoneMinLen || len(value) > PhoneMaxLen {
		return []apperrors.FieldError{{
			Field:   "phone",
			Message: fmt.Sprintf("Must be between %d and %d characters", PhoneMinLen, PhoneMaxLen),
		}}
	}
	if !s.phoneRegex.MatchString(value) {
		return []apperrors.FieldError{{
			Field:   "phone",
			Message: "Phone number format is invalid",
		}}
	}
	return nil
}

// ValidateGender checks membership in the closed gender set.
func (s *PatientValidationService) ValidateGender(value string) []apperrors.FieldError {
	for _, g := range dto.ValidGenders {
		if g == value {
			return nil
		}
	}
	return []apperrors.FieldError{{
		Field:   "gender",
		Message: "Gender must be one of: male, female, child",
	}}
}

// ValidateAddress checks the [10,200] length of an address.
func (s *PatientValidationService) ValidateAddress(value string) []apperrors.FieldError {
	value = strings.TrimSpace(value)

	if len([]rune(value)) < AddressMinLen || len([]rune(value)) > AddressMaxLen {
		return []apperrors.FieldError{{
			Field:   "address",
			Message: fmt.Sprintf("Must be between %d and %d characters", AddressMinLen, AddressMaxLen),
		}}
	}
	return nil
}

// ValidateBirthDate rejects future dates and ages above 150 years.
func (s *PatientValidationService) ValidateBirthDate(value time.Time) []apperrors.FieldError {
	now := time.Now()

	if value.After(now) {
		return []apperrors.FieldError{{
			Field:   "birthDate",
			Message: "Birth date cannot be in the future",
		}}
	}
	if value.Before(now.AddDate(-MaxAgeYears, 0, 0)) {
		return []apperrors.FieldError{{
			Field:   "birthDate",
			Message: fmt.Sprintf("Age cannot exceed %d years", MaxAgeYears),
		}}
	}
	return nil
}

// ValidateVaccination rejects empty entries.
func (s *PatientValidationService) ValidateVaccination(values []string) []apperrors.FieldError {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return []apperrors.FieldError{{
				Field:   "vaccination",
				Message: "All vaccinations must be non-empty strings",
			}}
		}
	}
	return nil
}

// ValidateNote checks note title (1-100) and content (1-1000).
func (s *PatientValidationService) ValidateNote(title, content string) []apperrors.FieldError {
	var errs []apperrors.FieldError

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if len([]rune(title)) < 1 || len([]rune(title)) > NoteTitleMax {
		errs = append(errs, apperrors.FieldError{
			Field:   "title",
			Message: fmt.Sprintf("Note title must be between 1 and %d characters", NoteTitleMax),
		})
	}
	if len([]rune(content)) < 1 || len([]rune(content)) > NoteBodyMax {
		errs = append(errs, apperrors.FieldError{
			Field:   "content",
			Message: fmt.Sprintf("Note content must be between 1 and %d characters", NoteBodyMax),
		})
	}
	return errs
}

func (s *PatientValidationService) validateMaxLen(field, value string, max int) []apperrors.FieldError {
	if len([]rune(strings.TrimSpace(value))) > max {
		return []apperrors.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("Cannot exceed %d characters", max),
		}}
	}
	return nil
}
