package api

import (
	"log/slog"

	"github.com/gorilla/mux"

	"github.com/gigboard/gigboard/internal/config"
	"github.com/gigboard/gigboard/internal/db"
	"github.com/gigboard/gigboard/internal/hiring"
	"github.com/gigboard/gigboard/internal/realtime"
	"github.com/gigboard/gigboard/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB, hub *realtime.Hub, log *slog.Logger) *mux.Router {
	SetLogger(log)

	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(database, log)

	engine := hiring.NewEngine(repo, repo, hub, log)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	gigsHandler := NewGigsHandler(repo, hub)
	bidsHandler := NewBidsHandler(repo, repo)
	hiringHandler := NewHiringHandler(engine)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")
	r.HandleFunc("/v1/gigs", gigsHandler.ListGigs).Methods("GET")

	// Realtime clients identify themselves with a register-user message
	// after connecting, matching the presence registry contract.
	r.HandleFunc("/ws", hub.HandleWS)

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")
	authV1.HandleFunc("/me", authHandler.Me).Methods("GET")

	// Marketplace endpoints
	apiV1.HandleFunc("/gigs", gigsHandler.CreateGig).Methods("POST")
	apiV1.HandleFunc("/bids", bidsHandler.CreateBid).Methods("POST")
	apiV1.HandleFunc("/bids/{gigId}", bidsHandler.ListBidsByGig).Methods("GET")
	apiV1.HandleFunc("/hire/{bidId}", hiringHandler.Hire).Methods("POST")
	apiV1.HandleFunc("/dashboard", hiringHandler.Dashboard).Methods("GET")

	return r
}
