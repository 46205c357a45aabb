package patients

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"clinic-core/internal/modules/patients/controllers"
	"clinic-core/internal/modules/patients/repository"
	"clinic-core/internal/modules/patients/services"
	authMiddleware "clinic-core/internal/shared/middleware/auth"
)

// Module groups every provider of the patients domain.
var Module = fx.Options(
	fx.Provide(repository.NewPatientRepository),
	fx.Provide(services.NewPatientValidationService),
	fx.Provide(services.NewPatientService),
	fx.Provide(services.NewStatsService),

	fx.Provide(controllers.NewPatientController),
	fx.Provide(controllers.NewStatsController),

	fx.Invoke(RegisterPatientRoutes),
)

// RegisterPatientRoutes wires the gin routes of the patients domain. Every
// route requires an authenticated session; deletion is further restricted
// to admin and doctor roles.
func RegisterPatientRoutes(
	r *gin.Engine,
	patientController *controllers.PatientController,
	statsController *controllers.StatsController,
	sessionMiddleware *authMiddleware.SessionMiddleware,
) {
	patientsAPI := r.Group("/api/patients")
	patientsAPI.Use(sessionMiddleware.Handler(), authMiddleware.RequireAuth())
	{
		patientsAPI.GET("", patientController.List)
		patientsAPI.GET("/:id", patientController.Get)
		patientsAPI.GET("/search/phone/:phone", patientController.GetByPhone)

		patientsAPI.POST("", patientController.Create)
		patientsAPI.PUT("/:id", patientController.Update)
		patientsAPI.DELETE("/:id", authMiddleware.RequireAuth("admin", "doctor"), patientController.Delete)

		patientsAPI.POST("/:id/notes", patientController.AddNote)
		patientsAPI.DELETE("/:id/notes/:noteId", patientController.RemoveNote)
	}

	statsAPI := r.Group("/api/stats")
	statsAPI.Use(sessionMiddleware.Handler(), authMiddleware.RequireAuth())
	{
		statsAPI.GET("", statsController.Overview)
	}
}
