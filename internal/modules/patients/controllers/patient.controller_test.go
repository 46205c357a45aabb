package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clinic-core/internal/modules/patients/dto"
	"clinic-core/internal/modules/patients/repository"
	"clinic-core/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func notFoundErr() error {
	return apperrors.NotFound("Patient not found")
}

type fakePatientService struct {
	lastSearch dto.SearchParams
	patient    *dto.PatientResponse
	list       *dto.PatientListResponse
	err        error
}

func (f *fakePatientService) Create(_ context.Context, _ *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	return f.patient, f.err
}

func (f *fakePatientService) Get(_ context.Context, _ string) (*dto.PatientResponse, error) {
	return f.patient, f.err
}

func (f *fakePatientService) FindByPhone(_ context.Context, _ string) (*dto.PatientResponse, error) {
	return f.patient, f.err
}

func (f *fakePatientService) Update(_ context.Context, _ string, _ *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	return f.patient, f.err
}

func (f *fakePatientService) Delete(_ context.Context, _ string) error {
	return f.err
}

func (f *fakePatientService) Search(_ context.Context, params dto.SearchParams) (*dto.PatientListResponse, error) {
	f.lastSearch = params
	return f.list, f.err
}

func (f *fakePatientService) AddNote(_ context.Context, _ string, _ *dto.NoteInput) (*dto.PatientResponse, error) {
	return f.patient, f.err
}

func (f *fakePatientService) RemoveNote(_ context.Context, _, _ string) (*dto.PatientResponse, error) {
	return f.patient, f.err
}

func samplePatient() *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:          "p1",
		FirstName:   "Ana",
		LastName:    "Silva",
		FullName:    "Ana Silva",
		Phone:       "0612345678",
		Gender:      "female",
		Vaccination: []string{},
		Notes:       []dto.NoteResponse{},
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func newTestController(fake *fakePatientService) *PatientController {
	return &PatientController{patientService: fake}
}

func TestListParsesQueryParameters(t *testing.T) {
	fake := &fakePatientService{list: &dto.PatientListResponse{Patients: []dto.PatientResponse{}}}
	controller := newTestController(fake)

	r := newTestEngine()
	r.GET("/api/patients", controller.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/patients?query=Ana&gender=female&ageMin=18&ageMax=65&limit=5&offset=10", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	want := dto.SearchParams{Query: "Ana", Gender: "female", AgeMin: 18, AgeMax: 65, Limit: 5, Offset: 10}
	if fake.lastSearch != want {
		t.Errorf("search params = %+v, want %+v", fake.lastSearch, want)
	}
}

func TestListQueryParameterReachesTextFilter(t *testing.T) {
	fake := &fakePatientService{list: &dto.PatientListResponse{Patients: []dto.PatientResponse{}}}
	controller := newTestController(fake)

	r := newTestEngine()
	r.GET("/api/patients", controller.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/patients?query=Ana", nil)
	r.ServeHTTP(w, req)

	// The parsed term must survive end to end into the $text clause.
	filter := repository.BuildSearchFilter(fake.lastSearch, time.Now())
	text, ok := filter["$text"].(bson.M)
	if !ok {
		t.Fatalf("filter %v carries no $text clause for ?query=", filter)
	}
	if text["$search"] != "Ana" {
		t.Errorf("$search = %v, want Ana", text["$search"])
	}
}

func TestGetReturnsBarePatient(t *testing.T) {
	fake := &fakePatientService{patient: samplePatient()}
	controller := newTestController(fake)

	r := newTestEngine()
	r.GET("/api/patients/:id", controller.Get)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/patients/p1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["id"] != "p1" {
		t.Errorf("top-level id = %v, want p1", body["id"])
	}
	if _, wrapped := body["patient"]; wrapped {
		t.Error("response wraps the patient in an envelope")
	}
}

func TestCreateReturnsBarePatientWith201(t *testing.T) {
	fake := &fakePatientService{patient: samplePatient()}
	controller := newTestController(fake)

	r := newTestEngine()
	r.POST("/api/patients", controller.Create)

	payload := `{"firstName":"Ana","lastName":"Silva","phone":"0612345678","gender":"female"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["fullName"] != "Ana Silva" {
		t.Errorf("top-level fullName = %v, want Ana Silva", body["fullName"])
	}
	if _, wrapped := body["message"]; wrapped {
		t.Error("create response carries a message envelope")
	}
}

func TestDeleteKeepsMessageEnvelope(t *testing.T) {
	fake := &fakePatientService{}
	controller := newTestController(fake)

	r := newTestEngine()
	r.DELETE("/api/patients/:id", controller.Delete)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/patients/p1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["id"] != "p1" {
		t.Errorf("id = %v, want p1", body["id"])
	}
	if body["message"] == nil {
		t.Error("delete response is missing its message")
	}
}

func TestErrorsKeepTaxonomyBody(t *testing.T) {
	fake := &fakePatientService{err: notFoundErr()}
	controller := newTestController(fake)

	r := newTestEngine()
	r.GET("/api/patients/:id", controller.Get)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/patients/missing", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "NotFound" {
		t.Errorf("error = %v, want NotFound", body["error"])
	}
}
