package services

import (
	"strings"
	"testing"
	"time"

	"clinic-core/internal/modules/patients/dto"
)

func strPtr(s string) *string { return &s }

func TestValidateName(t *testing.T) {
	s := NewPatientValidationService()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid simple", "Marie", false},
		{"valid hyphenated", "Jean-Pierre", false},
		{"valid accented", "Françoise", false},
		{"valid with space", "Ana Maria", false},
		{"too short", "A", true},
		{"empty", "", true},
		{"only whitespace", "   ", true},
		{"too long", strings.Repeat("a", 51), true},
		{"exactly max", strings.Repeat("a", 50), false},
		{"digits rejected", "Marie2", true},
		{"symbols rejected", "Marie!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := s.ValidateName("firstName", tt.value)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("ValidateName(%q) errors = %v, wantErr %v", tt.value, errs, tt.wantErr)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	s := NewPatientValidationService()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"plain digits", "0612345678", false},
		{"international", "+33 6 12 34 56 78", false},
		{"with parentheses", "(01) 234-5678", false},
		{"too short", "123456", true},
		{"too long", strings.Repeat("1", 21), true},
		{"letters rejected", "06abc45678", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := s.ValidatePhone(tt.value)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("ValidatePhone(%q) errors = %v, wantErr %v", tt.value, errs, tt.wantErr)
			}
		})
	}
}

func TestValidateGender(t *testing.T) {
	s := NewPatientValidationService()

	for _, g := range []string{"male", "female", "child"} {
		if errs := s.ValidateGender(g); len(errs) > 0 {
			t.Errorf("ValidateGender(%q) = %v, want no errors", g, errs)
		}
	}
	for _, g := range []string{"", "Male", "other", "m"} {
		if errs := s.ValidateGender(g); len(errs) == 0 {
			t.Errorf("ValidateGender(%q) = nil, want error", g)
		}
	}
}

func TestValidateBirthDate(t *testing.T) {
	s := NewPatientValidationService()

	if errs := s.ValidateBirthDate(time.Now().AddDate(0, 0, 1)); len(errs) == 0 {
		t.Error("future birth date accepted")
	}
	if errs := s.ValidateBirthDate(time.Now().AddDate(-151, 0, 0)); len(errs) == 0 {
		t.Error("age above 150 accepted")
	}
	if errs := s.ValidateBirthDate(time.Now().AddDate(-30, 0, 0)); len(errs) > 0 {
		t.Errorf("valid birth date rejected: %v", errs)
	}
}

func TestValidateNote(t *testing.T) {
	s := NewPatientValidationService()

	tests := []struct {
		name     string
		title    string
		content  string
		wantErrs int
	}{
		{"valid", "Follow-up", "Patient recovering well", 0},
		{"empty title", "", "content", 1},
		{"empty content", "title", "", 1},
		{"both empty", "", "", 2},
		{"whitespace only title", "   ", "content", 1},
		{"title too long", strings.Repeat("t", 101), "content", 1},
		{"content too long", "title", strings.Repeat("c", 1001), 1},
		{"content at max", "title", strings.Repeat("c", 1000), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := s.ValidateNote(tt.title, tt.content)
			if len(errs) != tt.wantErrs {
				t.Errorf("ValidateNote() = %v, want %d errors", errs, tt.wantErrs)
			}
		})
	}
}

func TestValidateCreateAggregatesErrors(t *testing.T) {
	s := NewPatientValidationService()

	req := &dto.CreatePatientRequest{
		FirstName: "A",
		LastName:  "",
		Phone:     "123",
		Gender:    "unknown",
	}

	errs := s.ValidateCreate(req)
	if len(errs) != 4 {
		t.Fatalf("ValidateCreate() = %d errors (%v), want 4", len(errs), errs)
	}

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, f := range []string{"firstName", "lastName", "phone", "gender"} {
		if !fields[f] {
			t.Errorf("missing violation for field %q", f)
		}
	}
}

func TestValidateCreateOptionalFields(t *testing.T) {
	s := NewPatientValidationService()

	valid := &dto.CreatePatientRequest{
		FirstName: "Marie",
		LastName:  "Dupont",
		Phone:     "0612345678",
		Gender:    "female",
	}
	if errs := s.ValidateCreate(valid); len(errs) > 0 {
		t.Fatalf("minimal valid request rejected: %v", errs)
	}

	withBadAddress := *valid
	withBadAddress.Address = strPtr("short")
	if errs := s.ValidateCreate(&withBadAddress); len(errs) != 1 || errs[0].Field != "address" {
		t.Errorf("short address: got %v, want single address error", errs)
	}

	withBadVaccination := *valid
	withBadVaccination.Vaccination = []string{"BCG", "  "}
	if errs := s.ValidateCreate(&withBadVaccination); len(errs) != 1 || errs[0].Field != "vaccination" {
		t.Errorf("blank vaccination entry: got %v, want single vaccination error", errs)
	}
}

func TestValidateUpdateChecksOnlyPresentFields(t *testing.T) {
	s := NewPatientValidationService()

	// Empty update is valid
	if errs := s.ValidateUpdate(&dto.UpdatePatientRequest{}); len(errs) > 0 {
		t.Errorf("empty update rejected: %v", errs)
	}

	// An absent phone is not validated even though it would fail
	req := &dto.UpdatePatientRequest{FirstName: strPtr("Marie")}
	if errs := s.ValidateUpdate(req); len(errs) > 0 {
		t.Errorf("partial update with valid field rejected: %v", errs)
	}

	// A present invalid field is caught
	req = &dto.UpdatePatientRequest{Phone: strPtr("12")}
	if errs := s.ValidateUpdate(req); len(errs) != 1 || errs[0].Field != "phone" {
		t.Errorf("invalid phone in update: got %v, want single phone error", errs)
	}
}
