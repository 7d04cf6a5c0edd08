package http

import (
	"net/http"

	"clinic-management-api/internal/delivery/http/handler"
	"clinic-management-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	employeeHandler    *handler.EmployeeHandler
	patientHandler     *handler.PatientHandler
	appointmentHandler *handler.AppointmentHandler
	examHandler        *handler.ExamHandler
	encounterHandler   *handler.EncounterHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	employeeHandler *handler.EmployeeHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	examHandler *handler.ExamHandler,
	encounterHandler *handler.EncounterHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		employeeHandler:    employeeHandler,
		patientHandler:     patientHandler,
		appointmentHandler: appointmentHandler,
		examHandler:        examHandler,
		encounterHandler:   encounterHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Every resource route requires an authenticated caller; fine-grained
	// authorization happens in the usecases.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Employees
	protected.HandleFunc("/employees", r.employeeHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/employees", r.employeeHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/employees/physicians", r.employeeHandler.Physicians).Methods(http.MethodGet)
	protected.HandleFunc("/employees/search/login/{login}", r.employeeHandler.SearchByLogin).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{id}", r.employeeHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{id}", r.employeeHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/employees/{id}", r.employeeHandler.Delete).Methods(http.MethodDelete)

	// Patients
	protected.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/patients", r.patientHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/patients/search/cpf", r.patientHandler.SearchByCPF).Methods(http.MethodGet)
	protected.HandleFunc("/patients/search/name", r.patientHandler.SearchByName).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{id}", r.patientHandler.Delete).Methods(http.MethodDelete)

	// Appointments
	protected.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/today", r.appointmentHandler.Today).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	// Exams
	protected.HandleFunc("/exams", r.examHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/exams", r.examHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/exams/physician", r.examHandler.ByPhysician).Methods(http.MethodGet)
	protected.HandleFunc("/exams/nurse", r.examHandler.ByNurse).Methods(http.MethodGet)
	protected.HandleFunc("/exams/patient/{id}", r.examHandler.ByPatient).Methods(http.MethodGet)
	protected.HandleFunc("/exams/{id}", r.examHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/exams/{id}", r.examHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/exams/{id}", r.examHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/exams/{id}/result", r.examHandler.EnterResult).Methods(http.MethodPost)
	protected.HandleFunc("/exams/{id}/status", r.examHandler.UpdateStatus).Methods(http.MethodPatch)

	// Nursing encounters
	protected.HandleFunc("/encounters", r.encounterHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/encounters", r.encounterHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/encounters/triage", r.encounterHandler.Triage).Methods(http.MethodPost)
	protected.HandleFunc("/encounters/in-progress", r.encounterHandler.InProgress).Methods(http.MethodGet)
	protected.HandleFunc("/encounters/nurse", r.encounterHandler.ByNurse).Methods(http.MethodGet)
	protected.HandleFunc("/encounters/patient/{id}", r.encounterHandler.ByPatient).Methods(http.MethodGet)
	protected.HandleFunc("/encounters/{id}", r.encounterHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/encounters/{id}", r.encounterHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/encounters/{id}", r.encounterHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/encounters/{id}/vitals", r.encounterHandler.RecordVitals).Methods(http.MethodPatch)
	protected.HandleFunc("/encounters/{id}/start", r.encounterHandler.Start).Methods(http.MethodPost)
	protected.HandleFunc("/encounters/{id}/finish", r.encounterHandler.Finish).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
