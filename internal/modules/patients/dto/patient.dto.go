package dto

import (
	"strconv"
	"strings"
	"time"
)

// Validation bounds for search pagination.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 100
)

// Genders accepted by the patient schema.
var ValidGenders = []string{"male", "female", "child"}

// CreatePatientRequest is the payload for patient creation. Required:
// firstName, lastName, phone, gender. Everything else is validated only
// when present.
type CreatePatientRequest struct {
	FirstName     string      `json:"firstName" binding:"required"`
	LastName      string      `json:"lastName" binding:"required"`
	Phone         string      `json:"phone" binding:"required"`
	Gender        string      `json:"gender" binding:"required"`
	Address       *string     `json:"address"`
	BirthDate     *time.Time  `json:"birthDate"`
	MaritalStatus *string     `json:"maritalStatus"`
	Occupation    *string     `json:"occupation"`
	VisitDate     *time.Time  `json:"visitDate"`
	Vaccination   []string    `json:"vaccination"`
	Notes         []NoteInput `json:"notes"`
}

// UpdatePatientRequest is a field-level partial update: nil means "leave
// untouched", never "reset".
type UpdatePatientRequest struct {
	FirstName     *string     `json:"firstName"`
	LastName      *string     `json:"lastName"`
	Phone         *string     `json:"phone"`
	Gender        *string     `json:"gender"`
	Address       *string     `json:"address"`
	BirthDate     *time.Time  `json:"birthDate"`
	MaritalStatus *string     `json:"maritalStatus"`
	Occupation    *string     `json:"occupation"`
	VisitDate     *time.Time  `json:"visitDate"`
	Vaccination   *[]string   `json:"vaccination"`
}

// IsEmpty reports whether the update carries no field at all.
func (r *UpdatePatientRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Phone == nil &&
		r.Gender == nil && r.Address == nil && r.BirthDate == nil &&
		r.MaritalStatus == nil && r.Occupation == nil && r.VisitDate == nil &&
		r.Vaccination == nil
}

// NoteInput is the payload for adding a note.
type NoteInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// SearchParams is the normalized search filter: a conjunction of free text,
// gender equality, and an inclusive age range.
type SearchParams struct {
	Query  string
	Gender string
	AgeMin int // -1 = unbounded
	AgeMax int // -1 = unbounded
	Limit  int
	Offset int
}

// ParseSearchParams builds SearchParams from raw query values, clamping the
// limit to [1, 100] (default 10) and the offset to >= 0. Invalid numbers
// fall back to defaults rather than erroring, matching the API contract.
func ParseSearchParams(query, gender, ageMin, ageMax, limit, offset string) SearchParams {
	params := SearchParams{
		Query:  strings.TrimSpace(query),
		AgeMin: parseOptionalInt(ageMin),
		AgeMax: parseOptionalInt(ageMax),
		Limit:  DefaultSearchLimit,
		Offset: 0,
	}

	if isValidGender(gender) {
		params.Gender = gender
	}

	if n, err := strconv.Atoi(limit); err == nil {
		params.Limit = n
	}
	if params.Limit < 1 {
		params.Limit = DefaultSearchLimit
	}
	if params.Limit > MaxSearchLimit {
		params.Limit = MaxSearchLimit
	}

	if n, err := strconv.Atoi(offset); err == nil && n > 0 {
		params.Offset = n
	}

	return params
}

func parseOptionalInt(value string) int {
	if n, err := strconv.Atoi(value); err == nil && n >= 0 {
		return n
	}
	return -1
}

func isValidGender(gender string) bool {
	for _, g := range ValidGenders {
		if g == gender {
			return true
		}
	}
	return false
}

// NoteResponse is a note as serialized in API responses.
type NoteResponse struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

// PatientResponse is a patient as serialized in API responses. Age and
// fullName are derived, never stored.
type PatientResponse struct {
	ID            string         `json:"id"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	FullName      string         `json:"fullName"`
	Phone         string         `json:"phone"`
	Gender        string         `json:"gender"`
	Address       *string        `json:"address,omitempty"`
	BirthDate     *time.Time     `json:"birthDate,omitempty"`
	Age           *int           `json:"age,omitempty"`
	MaritalStatus *string        `json:"maritalStatus,omitempty"`
	Occupation    *string        `json:"occupation,omitempty"`
	VisitDate     *time.Time     `json:"visitDate,omitempty"`
	Vaccination   []string       `json:"vaccination"`
	Notes         []NoteResponse `json:"notes"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// PatientListResponse is the paginated search result.
type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// StatsResponse is the aggregate counts payload.
type StatsResponse struct {
	Total        int64 `json:"total"`
	Male         int64 `json:"male"`
	Female       int64 `json:"female"`
	Children     int64 `json:"children"`
	AverageAge   int   `json:"averageAge"`
	RecentVisits int64 `json:"recentVisits"`
}
