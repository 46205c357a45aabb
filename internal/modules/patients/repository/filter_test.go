package repository

import (
	"testing"
	"time"

	"clinic-core/internal/modules/patients/dto"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildSearchFilterEmpty(t *testing.T) {
	filter := BuildSearchFilter(dto.SearchParams{AgeMin: -1, AgeMax: -1}, time.Now())
	if len(filter) != 0 {
		t.Errorf("empty params produced filter %v, want empty", filter)
	}
}

func TestBuildSearchFilterText(t *testing.T) {
	filter := BuildSearchFilter(dto.SearchParams{Query: "dupont", AgeMin: -1, AgeMax: -1}, time.Now())

	text, ok := filter["$text"].(bson.M)
	if !ok {
		t.Fatalf("missing $text clause in %v", filter)
	}
	if text["$search"] != "dupont" {
		t.Errorf("$search = %v, want dupont", text["$search"])
	}
}

func TestBuildSearchFilterGender(t *testing.T) {
	filter := BuildSearchFilter(dto.SearchParams{Gender: "female", AgeMin: -1, AgeMax: -1}, time.Now())
	if filter["gender"] != "female" {
		t.Errorf("gender clause = %v, want female", filter["gender"])
	}
}

func TestBuildSearchFilterAgeRange(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("both bounds", func(t *testing.T) {
		filter := BuildSearchFilter(dto.SearchParams{AgeMin: 18, AgeMax: 65}, now)

		window, ok := filter["birthDate"].(bson.M)
		if !ok {
			t.Fatalf("missing birthDate clause in %v", filter)
		}
		from, _ := window["$gt"].(time.Time)
		to, _ := window["$lte"].(time.Time)

		if want := now.AddDate(-66, 0, 0); !from.Equal(want) {
			t.Errorf("$gt = %v, want %v", from, want)
		}
		if want := now.AddDate(-18, 0, 0); !to.Equal(want) {
			t.Errorf("$lte = %v, want %v", to, want)
		}
	})

	t.Run("min only", func(t *testing.T) {
		filter := BuildSearchFilter(dto.SearchParams{AgeMin: 18, AgeMax: -1}, now)

		window := filter["birthDate"].(bson.M)
		if _, exists := window["$gt"]; exists {
			t.Error("open max age must not set $gt")
		}
		if _, exists := window["$lte"]; !exists {
			t.Error("min age must set $lte")
		}
	})

	t.Run("max only", func(t *testing.T) {
		filter := BuildSearchFilter(dto.SearchParams{AgeMin: -1, AgeMax: 12}, now)

		window := filter["birthDate"].(bson.M)
		if _, exists := window["$lte"]; exists {
			t.Error("open min age must not set $lte")
		}
		if _, exists := window["$gt"]; !exists {
			t.Error("max age must set $gt")
		}
	})
}

func TestBuildPhoneFilter(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"digits only", "0612", "0[^0-9]*6[^0-9]*1[^0-9]*2"},
		{"formatted input", "+33 (6) 12", "3[^0-9]*3[^0-9]*6[^0-9]*1[^0-9]*2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := BuildPhoneFilter(tt.phone)
			clause, ok := filter["phone"].(bson.M)
			if !ok {
				t.Fatalf("missing phone clause in %v", filter)
			}
			if clause["$regex"] != tt.want {
				t.Errorf("$regex = %v, want %v", clause["$regex"], tt.want)
			}
		})
	}
}

func TestBuildPhoneFilterNoDigits(t *testing.T) {
	filter := BuildPhoneFilter("abc")
	if _, hasPhone := filter["phone"]; hasPhone {
		t.Errorf("digit-free input produced a phone clause: %v", filter)
	}
	if id, hasID := filter["_id"]; !hasID || id != nil {
		t.Errorf("digit-free input must yield the impossible _id filter, got %v", filter)
	}
}
