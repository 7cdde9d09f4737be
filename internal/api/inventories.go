package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Ryladain/Inventory-files/internal/models"
)

// handleGetInventory returns a user's inventory
func (s *Server) handleGetInventory(w http.ResponseWriter, r *http.Request) {
	actor, target, ok := ids(w, r)
	if !ok {
		return
	}

	inv, err := s.svc.Get(r.Context(), actor, target)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch inventory")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":     target,
		"inventory":   inv,
		"total_count": inv.Count(),
	})
}

// handleAddItem adds free text to a category, or returns a catalog
// suggestion to confirm
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	actor, target, ok := ids(w, r)
	if !ok {
		return
	}

	var req models.AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := s.svc.Add(r.Context(), actor, target, req.Category, req.Text)
	if err != nil {
		respondServiceError(w, err, "Failed to add item")
		return
	}

	if res.Added != nil {
		respondJSON(w, http.StatusCreated, res)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// handleConfirmItem answers a suggestion returned by handleAddItem
func (s *Server) handleConfirmItem(w http.ResponseWriter, r *http.Request) {
	actor, target, ok := ids(w, r)
	if !ok {
		return
	}

	var req models.ConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := s.svc.Confirm(r.Context(), actor, target, req)
	if err != nil {
		respondServiceError(w, err, "Failed to confirm item")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// handleRemoveItem removes the item at a 0-based index of a category
func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	actor, target, ok := ids(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid item index")
		return
	}

	removed, err := s.svc.Remove(r.Context(), actor, target, chi.URLParam(r, "category"), index)
	if err != nil {
		respondServiceError(w, err, "Failed to remove item")
		return
	}

	respondJSON(w, http.StatusOK, removed)
}

// handleSimulate runs a multi-day loss/find simulation
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	actor, target, ok := ids(w, r)
	if !ok {
		return
	}

	var req models.SimulateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := s.svc.Simulate(r.Context(), actor, target, req.Days)
	if err != nil {
		respondServiceError(w, err, "Failed to run simulation")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// handleListSimulations returns the recent simulation runs for a user
func (s *Server) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	actor, target, ok := ids(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	runs, err := s.svc.Simulations(r.Context(), actor, target, limit)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch simulations")
		return
	}
	if runs == nil {
		runs = []models.SimulationSummary{}
	}

	respondJSON(w, http.StatusOK, runs)
}

// handleGetSimulation returns one recorded simulation run
func (s *Server) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Missing or invalid "+ActorHeader)
		return
	}

	report, err := s.svc.Simulation(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err, "Failed to fetch simulation")
		return
	}

	respondJSON(w, http.StatusOK, report)
}
