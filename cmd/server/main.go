package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"ecoreserva/internal/api"
	"ecoreserva/internal/auth"
	"ecoreserva/internal/repository"
	"ecoreserva/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	tokenTTL := 8 * time.Hour
	if hours := os.Getenv("JWT_EXPIRES_HOURS"); hours != "" {
		if h, err := strconv.Atoi(hours); err == nil && h > 0 {
			tokenTTL = time.Duration(h) * time.Hour
		}
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	lodgingRepo := repository.NewLodgingRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	jobRepo := repository.NewJobRepository(db)

	stripeSvc := service.NewStripeService()
	notifier := service.NewReservationNotifier()
	authSvc := service.NewAuthService(userRepo, jwtSecret, tokenTTL)
	lodgingSvc := service.NewLodgingService(lodgingRepo, userRepo)
	departmentSvc := service.NewDepartmentService(departmentRepo, lodgingRepo)
	activitySvc := service.NewActivityService(activityRepo, lodgingRepo)
	reservationSvc := service.NewReservationService(reservationRepo, userRepo, notifier, stripeSvc)
	jobSvc := service.NewJobService(jobRepo)

	authHandler := api.NewAuthHandler(authSvc)
	lodgingHandler := api.NewLodgingHandler(lodgingSvc)
	departmentHandler := api.NewDepartmentHandler(departmentSvc)
	activityHandler := api.NewActivityHandler(activitySvc)
	reservationHandler := api.NewReservationHandler(reservationSvc)
	healthHandler := api.NewHealthHandler(db)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/health", healthHandler.Check).Methods("GET")
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/hospedajes", lodgingHandler.List).Methods("GET")
	r.HandleFunc("/api/departamentos/by-hotel/{id}", departmentHandler.ListByHotel).Methods("GET")

	// Authenticated endpoints
	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(auth.Middleware(jwtSecret))

	authed.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	ownerOrAdmin := auth.RequireRoles(service.RoleOwner, service.RoleAdmin)
	adminOnly := auth.RequireRoles(service.RoleAdmin)
	clientOnly := auth.RequireRoles(service.RoleClient)

	authed.Handle("/hospedajes", ownerOrAdmin(http.HandlerFunc(lodgingHandler.Create))).Methods("POST")
	authed.Handle("/hospedajes/owner/me", ownerOrAdmin(http.HandlerFunc(lodgingHandler.ListOwner))).Methods("GET")
	authed.Handle("/hospedajes/admin", adminOnly(http.HandlerFunc(lodgingHandler.ListAdmin))).Methods("GET")
	authed.Handle("/hospedajes/{id}/status", adminOnly(http.HandlerFunc(lodgingHandler.UpdateStatus))).Methods("PATCH")

	authed.Handle("/departamentos", ownerOrAdmin(http.HandlerFunc(departmentHandler.Create))).Methods("POST")
	authed.Handle("/departamentos/owner/me", ownerOrAdmin(http.HandlerFunc(departmentHandler.ListOwner))).Methods("GET")
	authed.Handle("/departamentos/pending", adminOnly(http.HandlerFunc(departmentHandler.ListPending))).Methods("GET")
	authed.Handle("/departamentos/{id}/status", adminOnly(http.HandlerFunc(departmentHandler.UpdateStatus))).Methods("PATCH")

	authed.Handle("/actividades", ownerOrAdmin(http.HandlerFunc(activityHandler.Create))).Methods("POST")
	authed.Handle("/actividades/owner/me", ownerOrAdmin(http.HandlerFunc(activityHandler.ListOwner))).Methods("GET")
	authed.HandleFunc("/actividades/hospedaje/{id}", activityHandler.ListByLodging).Methods("GET")
	authed.Handle("/actividades/{id}", ownerOrAdmin(http.HandlerFunc(activityHandler.Update))).Methods("PUT")
	authed.Handle("/actividades/{id}", ownerOrAdmin(http.HandlerFunc(activityHandler.Delete))).Methods("DELETE")

	authed.Handle("/reservas", clientOnly(http.HandlerFunc(reservationHandler.Create))).Methods("POST")
	authed.Handle("/reservas", adminOnly(http.HandlerFunc(reservationHandler.ListAll))).Methods("GET")
	authed.HandleFunc("/reservas/me", reservationHandler.ListMine).Methods("GET")
	authed.Handle("/reservas/owner/me", ownerOrAdmin(http.HandlerFunc(reservationHandler.ListOwner))).Methods("GET")
	authed.HandleFunc("/reservas/{id}", reservationHandler.UpdateDates).Methods("PUT")
	authed.HandleFunc("/reservas/{id}/status", reservationHandler.UpdateStatus).Methods("PATCH")
	authed.Handle("/reservas/{id}/payment-status", adminOnly(http.HandlerFunc(reservationHandler.UpdatePaymentStatus))).Methods("PATCH")

	c := cron.New()
	if _, err := c.AddFunc("@daily", func() {
		if err := jobSvc.CompleteFinishedStays(); err != nil {
			log.Printf("Cron Job: %v", err)
		}
		if err := jobSvc.PurgeStalePending(30 * 24 * time.Hour); err != nil {
			log.Printf("Cron Job: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule cron jobs: %v", err)
	}
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
