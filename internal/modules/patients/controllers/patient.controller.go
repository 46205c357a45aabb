package controllers

import (
	"context"
	"net/http"

	"clinic-core/internal/modules/patients/dto"
	"clinic-core/internal/modules/patients/services"
	"clinic-core/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

// patientOperations is the service surface the controller depends on.
type patientOperations interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	Get(ctx context.Context, id string) (*dto.PatientResponse, error)
	FindByPhone(ctx context.Context, phone string) (*dto.PatientResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, params dto.SearchParams) (*dto.PatientListResponse, error)
	AddNote(ctx context.Context, id string, input *dto.NoteInput) (*dto.PatientResponse, error)
	RemoveNote(ctx context.Context, id, noteID string) (*dto.PatientResponse, error)
}

type PatientController struct {
	patientService patientOperations
}

// NewPatientController creates a new patient controller.
func NewPatientController(patientService *services.PatientService) *PatientController {
	return &PatientController{patientService: patientService}
}

// List handles GET /api/patients with optional search filters.
func (c *PatientController) List(ctx *gin.Context) {
	params := dto.ParseSearchParams(
		ctx.Query("query"),
		ctx.Query("gender"),
		ctx.Query("ageMin"),
		ctx.Query("ageMax"),
		ctx.Query("limit"),
		ctx.Query("offset"),
	)

	result, err := c.patientService.Search(ctx.Request.Context(), params)
	if err != nil {
		apperrors.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Get handles GET /api/patients/:id.
func (c *PatientController) Get(ctx *gin.Context) {
	patient, err := c.patientService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		apperrors.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, patient)
}

// GetByPhone handles GET /api/patients/search/phone/:phone.
func (c *PatientController) GetByPhone(ctx *gin.Context) {
	patient, err := c.patientService.FindByPhone(ctx.Request.Context(), ctx.Param("phone"))
	if err != nil {
		apperrors.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, patient)
}

// Create handles POST /api/patients.
func (c *PatientController) Create(ctx *gin.Context) {
	var req dto.CreatePatientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, http.StatusBadRequest, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "Invalid request body"},
		}))
		return
	}

	patient, err := c.patientService.Create(ctx.Request.Context(), &req)
	if err != nil {
		apperrors.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, patient)
}

// Update handles PUT /api/patients/:id.
func (c *PatientController) Update(ctx *gin.Context) {
	var req dto.UpdatePatientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, http.StatusBadRequest, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "Invalid request body"},
		}))
		return
	}

	patient, err := c.patientService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		apperrors.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, patient)
}

// Delete handles DELETE /api/patients/:id. The only patient endpoint with
// an envelope: the document is gone, so it returns {message, id}.
func (c *PatientController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.patientService.Delete(ctx.Request.Context(), id); err != nil {
		apperrors.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Patient deleted successfully",
		"id":      id,
	})
}

// AddNote handles POST /api/patients/:id/notes.
func (c *PatientController) AddNote(ctx *gin.Context) {
	var req dto.NoteInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(ctx, http.StatusBadRequest, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "Invalid request body"},
		}))
		return
	}

	patient, err := c.patientService.AddNote(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		apperrors.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, patient)
}

// RemoveNote handles DELETE /api/patients/:id/notes/:noteId.
func (c *PatientController) RemoveNote(ctx *gin.Context) {
	patient, err := c.patientService.RemoveNote(ctx.Request.Context(), ctx.Param("id"), ctx.Param("noteId"))
	if err != nil {
		apperrors.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, patient)
}
