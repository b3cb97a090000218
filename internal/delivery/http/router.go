package http

import (
	"net/http"

	"careconnect-api/internal/delivery/http/handler"
	"careconnect-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	authHandler    *handler.AuthHandler
	doctorHandler  *handler.DoctorHandler
	adminHandler   *handler.AdminHandler
	patientHandler *handler.PatientHandler
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	adminHandler *handler.AdminHandler,
	patientHandler *handler.PatientHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		authHandler:    authHandler,
		doctorHandler:  doctorHandler,
		adminHandler:   adminHandler,
		patientHandler: patientHandler,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
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
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctor registration and account recovery (public). Login goes
	// through the shared /auth/login; these aliases keep the doctor
	// portal on its own prefix.
	doctorAuth := api.PathPrefix("/doctor/auth").Subrouter()
	doctorAuth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	doctorAuth.HandleFunc("/verify-otp", r.doctorHandler.VerifyOTP).Methods(http.MethodPost)
	doctorAuth.HandleFunc("/resend-otp", r.doctorHandler.ResendOTP).Methods(http.MethodPost)
	doctorAuth.HandleFunc("/forgot-password", r.doctorHandler.ForgotPassword).Methods(http.MethodPost)
	doctorAuth.HandleFunc("/reset-password", r.doctorHandler.ResetPassword).Methods(http.MethodPost)

	// Doctor profile (registration is public, the rest needs a doctor token)
	api.HandleFunc("/doctor/profile", r.doctorHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/doctor/profile/{id}", r.doctorHandler.GetProfileByID).Methods(http.MethodGet)

	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/profile", r.doctorHandler.GetProfile).Methods(http.MethodGet)
	doctor.HandleFunc("/profile", r.doctorHandler.UpdateProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/profile/{id}", r.doctorHandler.UpdateProfileByID).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	adminAuth := api.PathPrefix("/admin/auth").Subrouter()
	adminAuth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// User management (admin)
	admin.HandleFunc("/users", r.adminHandler.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/users", r.adminHandler.GetAllUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.adminHandler.UpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/block", r.adminHandler.BlockUser).Methods(http.MethodPatch)
	admin.HandleFunc("/users/{id}/unblock", r.adminHandler.UnblockUser).Methods(http.MethodPatch)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.adminHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}", r.adminHandler.UpdateDoctor).Methods(http.MethodPut)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.adminHandler.GetAuditLogs).Methods(http.MethodGet)

	// Patient records (protected)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.HandleFunc("", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	patients.HandleFunc("", r.patientHandler.ListPatients).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
