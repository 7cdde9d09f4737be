package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Ryladain/Inventory-files/internal/inventory"
	"github.com/Ryladain/Inventory-files/internal/loot"
	"github.com/Ryladain/Inventory-files/internal/roster"
	"github.com/Ryladain/Inventory-files/internal/storage"
)

// ActorHeader carries the chat user id of the caller.
const ActorHeader = "X-User-ID"

var errNoActor = errors.New("missing " + ActorHeader + " header")

// Server holds the HTTP server dependencies
type Server struct {
	svc    *inventory.Service
	router chi.Router
}

// New creates a new API server
func New(svc *inventory.Service) *Server {
	s := &Server{
		svc:    svc,
		router: chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", ActorHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Reference data
		r.Get("/categories", s.handleGetCategories)
		r.Get("/catalog/search", s.handleSearchCatalog)

		// Inventories
		r.Route("/inventories/{userID}", func(r chi.Router) {
			r.Get("/", s.handleGetInventory)
			r.Post("/items", s.handleAddItem)
			r.Post("/items/confirm", s.handleConfirmItem)
			r.Delete("/items/{category}/{index}", s.handleRemoveItem)
			r.Post("/simulate", s.handleSimulate)
			r.Get("/simulations", s.handleListSimulations)
		})
		r.Get("/simulations/{id}", s.handleGetSimulation)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// --- Request helpers ---

func actorID(r *http.Request) (int64, error) {
	raw := r.Header.Get(ActorHeader)
	if raw == "" {
		return 0, errNoActor
	}
	return strconv.ParseInt(raw, 10, 64)
}

func targetID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
}

// ids reads the caller and the inventory owner, answering the request
// itself when either is missing.
func ids(w http.ResponseWriter, r *http.Request) (actor, target int64, ok bool) {
	actor, err := actorID(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Missing or invalid "+ActorHeader)
		return 0, 0, false
	}
	target, err = targetID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return 0, 0, false
	}
	return actor, target, true
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps a service error to its HTTP status.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, inventory.ErrUnknownCategory),
		errors.Is(err, inventory.ErrEmptyName),
		errors.Is(err, inventory.ErrInvalidDays),
		errors.Is(err, inventory.ErrTooManyDays),
		errors.Is(err, inventory.ErrNotInCatalog),
		errors.Is(err, roster.ErrNoTarget):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, roster.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, inventory.ErrItemNotFound),
		errors.Is(err, roster.ErrUnknownPlayer),
		errors.Is(err, inventory.ErrNoJournal),
		errors.Is(err, inventory.ErrSimulationNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, loot.ErrNothingToLose):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, storage.ErrMalformedInventory):
		log.Printf("Error: %s: %v", fallback, err)
		respondError(w, http.StatusConflict, "Stored inventory cannot be read; fix the data file first")
	default:
		log.Printf("Error: %s: %v", fallback, err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
