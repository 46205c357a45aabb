package services

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"clinic-core/internal/modules/patients/dto"
	"clinic-core/internal/modules/patients/repository"
	"clinic-core/internal/shared/apperrors"
	"clinic-core/internal/shared/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// MaxNotesPerPatient caps the embedded notes collection.
const MaxNotesPerPatient = 50

var multiSpace = regexp.MustCompile(`\s+`)

type PatientService struct {
	repo       *repository.PatientRepository
	validation *PatientValidationService
	log        *zap.Logger
}

// NewPatientService creates a new patient service.
func NewPatientService(
	repo *repository.PatientRepository,
	validation *PatientValidationService,
	log *zap.Logger,
) *PatientService {
	return &PatientService{
		repo:       repo,
		validation: validation,
		log:        log,
	}
}

// Create validates, normalizes, and persists a new patient.
func (s *PatientService) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	// 1. Aggregate every field violation into a single error
	if errs := s.validation.ValidateCreate(req); len(errs) > 0 {
		return nil, apperrors.Validation(errs)
	}

	// 2. Reject a phone already on file before touching the collection
	phone := normalizePhone(req.Phone)
	exists, err := s.repo.PhoneExists(ctx, phone, "")
	if err != nil {
		s.log.Error("failed to check phone uniqueness", zap.Error(err))
		return nil, apperrors.Internal("Failed to create patient")
	}
	if exists {
		return nil, apperrors.DuplicatePhone()
	}

	now := time.Now().UTC()
	patient := &repository.Patient{
		ID:            uuid.New().String(),
		FirstName:     titleCase(req.FirstName),
		LastName:      titleCase(req.LastName),
		Phone:         phone,
		Gender:        req.Gender,
		Address:       trimmed(req.Address),
		BirthDate:     req.BirthDate,
		MaritalStatus: trimmed(req.MaritalStatus),
		Occupation:    trimmed(req.Occupation),
		VisitDate:     req.VisitDate,
		Vaccination:   trimAll(req.Vaccination),
		Notes:         []repository.Note{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// 3. Notes supplied at creation get fresh ids and timestamps
	for _, note := range req.Notes {
		patient.Notes = append(patient.Notes, repository.Note{
			ID:      uuid.New().String(),
			Title:   strings.TrimSpace(note.Title),
			Content: strings.TrimSpace(note.Content),
			Date:    now,
		})
	}
	if len(patient.Notes) > MaxNotesPerPatient {
		return nil, apperrors.TooManyNotes()
	}

	// 4. Persist; the unique phone index backs the pre-check under races
	if err := s.repo.Insert(ctx, patient); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperrors.DuplicatePhone()
		}
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, apperrors.Internal("Failed to create patient")
	}

	s.log.Info("patient created", zap.String("patient_id", patient.ID))
	return toResponse(patient), nil
}

// Get returns a patient by id.
func (s *PatientService) Get(ctx context.Context, id string) (*dto.PatientResponse, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("failed to fetch patient", zap.Error(err))
		return nil, apperrors.Internal("Failed to fetch patient")
	}
	if patient == nil {
		return nil, apperrors.NotFound("Patient not found")
	}
	return toResponse(patient), nil
}

// FindByPhone returns the patient matching a phone number.
func (s *PatientService) FindByPhone(ctx context.Context, phone string) (*dto.PatientResponse, error) {
	patient, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		s.log.Error("failed to search by phone", zap.Error(err))
		return nil, apperrors.Internal("Failed to search by phone")
	}
	if patient == nil {
		return nil, apperrors.NotFound("Patient not found with this phone number")
	}
	return toResponse(patient), nil
}

// Update applies a partial update: only fields present in the payload are
// validated and written, everything else stays untouched.
func (s *PatientService) Update(ctx context.Context, id string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	if req.IsEmpty() {
		// Nothing to change; still a read so NotFound stays accurate
		return s.Get(ctx, id)
	}

	if errs := s.validation.ValidateUpdate(req); len(errs) > 0 {
		return nil, apperrors.Validation(errs)
	}

	if req.Phone != nil {
		exists, err := s.repo.PhoneExists(ctx, normalizePhone(*req.Phone), id)
		if err != nil {
			s.log.Error("failed to check phone uniqueness", zap.Error(err))
			return nil, apperrors.Internal("Failed to update patient")
		}
		if exists {
			return nil, apperrors.DuplicatePhone()
		}
	}

	set := bson.M{}
	if req.FirstName != nil {
		set["firstName"] = titleCase(*req.FirstName)
	}
	if req.LastName != nil {
		set["lastName"] = titleCase(*req.LastName)
	}
	if req.Phone != nil {
		set["phone"] = normalizePhone(*req.Phone)
	}
	if req.Gender != nil {
		set["gender"] = *req.Gender
	}
	if req.Address != nil {
		set["address"] = strings.TrimSpace(*req.Address)
	}
	if req.BirthDate != nil {
		set["birthDate"] = *req.BirthDate
	}
	if req.MaritalStatus != nil {
		set["maritalStatus"] = strings.TrimSpace(*req.MaritalStatus)
	}
	if req.Occupation != nil {
		set["occupation"] = strings.TrimSpace(*req.Occupation)
	}
	if req.VisitDate != nil {
		set["visitDate"] = *req.VisitDate
	}
	if req.Vaccination != nil {
		set["vaccination"] = trimAll(*req.Vaccination)
	}

	patient, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperrors.DuplicatePhone()
		}
		s.log.Error("failed to update patient", zap.Error(err))
		return nil, apperrors.Internal("Failed to update patient")
	}
	if patient == nil {
		return nil, apperrors.NotFound("Patient not found")
	}

	return toResponse(patient), nil
}

// Delete removes a patient and, implicitly, its embedded notes. Repeated
// deletes return NotFound.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("failed to delete patient", zap.Error(err))
		return apperrors.Internal("Failed to delete patient")
	}
	if !deleted {
		return apperrors.NotFound("Patient not found")
	}

	s.log.Info("patient deleted", zap.String("patient_id", id))
	return nil
}

// Search returns a page of patients matching the filter conjunction, plus
// the total match count.
func (s *PatientService) Search(ctx context.Context, params dto.SearchParams) (*dto.PatientListResponse, error) {
	filter := repository.BuildSearchFilter(params, time.Now())

	patients, total, err := s.repo.Search(ctx, filter, params.Limit, params.Offset)
	if err != nil {
		s.log.Error("failed to search patients", zap.Error(err))
		return nil, apperrors.Internal("Failed to fetch patients")
	}

	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *toResponse(&patients[i]))
	}

	return &dto.PatientListResponse{
		Patients: responses,
		Total:    total,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}, nil
}

// AddNote appends a note to a patient, enforcing the 50-note cap.
func (s *PatientService) AddNote(ctx context.Context, id string, input *dto.NoteInput) (*dto.PatientResponse, error) {
	if errs := s.validation.ValidateNote(input.Title, input.Content); len(errs) > 0 {
		return nil, apperrors.Validation(errs)
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("failed to load patient for note", zap.Error(err))
		return nil, apperrors.Internal("Failed to add note")
	}
	if current == nil {
		return nil, apperrors.NotFound("Patient not found")
	}
	if len(current.Notes) >= MaxNotesPerPatient {
		return nil, apperrors.TooManyNotes()
	}

	note := repository.Note{
		ID:      uuid.New().String(),
		Title:   strings.TrimSpace(input.Title),
		Content: strings.TrimSpace(input.Content),
		Date:    time.Now().UTC(),
	}

	patient, err := s.repo.PushNote(ctx, id, note)
	if err != nil {
		s.log.Error("failed to add note", zap.Error(err))
		return nil, apperrors.Internal("Failed to add note")
	}
	if patient == nil {
		return nil, apperrors.NotFound("Patient not found")
	}

	return toResponse(patient), nil
}

// RemoveNote deletes a note from a patient. Destructive, no undo.
func (s *PatientService) RemoveNote(ctx context.Context, id, noteID string) (*dto.PatientResponse, error) {
	patient, err := s.repo.PullNote(ctx, id, noteID)
	if err != nil {
		s.log.Error("failed to remove note", zap.Error(err))
		return nil, apperrors.Internal("Failed to remove note")
	}
	if patient != nil {
		return toResponse(patient), nil
	}

	// Distinguish a missing note from a missing patient
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("failed to load patient for note removal", zap.Error(err))
		return nil, apperrors.Internal("Failed to remove note")
	}
	if current == nil {
		return nil, apperrors.NotFound("Patient not found")
	}
	return nil, apperrors.NotFound("Note not found")
}

// toResponse maps a stored patient onto the API shape: derived fullName
// and age, notes most recent first.
func toResponse(p *repository.Patient) *dto.PatientResponse {
	notes := make([]dto.NoteResponse, 0, len(p.Notes))
	for _, n := range p.Notes {
		notes = append(notes, dto.NoteResponse{
			ID:      n.ID,
			Title:   n.Title,
			Content: n.Content,
			Date:    n.Date,
		})
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Date.After(notes[j].Date)
	})

	response := &dto.PatientResponse{
		ID:            p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		FullName:      p.FirstName + " " + p.LastName,
		Phone:         p.Phone,
		Gender:        p.Gender,
		Address:       p.Address,
		BirthDate:     p.BirthDate,
		MaritalStatus: p.MaritalStatus,
		Occupation:    p.Occupation,
		VisitDate:     p.VisitDate,
		Vaccination:   p.Vaccination,
		Notes:         notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if response.Vaccination == nil {
		response.Vaccination = []string{}
	}

	if p.BirthDate != nil {
		age := utils.Age(*p.BirthDate)
		response.Age = &age
	}

	return response
}

// titleCase trims a name and capitalizes the first letter of each word.
func titleCase(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// normalizePhone collapses runs of whitespace and trims the ends.
func normalizePhone(phone string) string {
	return strings.TrimSpace(multiSpace.ReplaceAllString(phone, " "))
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	t := strings.TrimSpace(*value)
	return &t
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
