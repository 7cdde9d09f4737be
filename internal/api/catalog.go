package api

import (
	"net/http"

	"github.com/Ryladain/Inventory-files/internal/inventory"
	"github.com/Ryladain/Inventory-files/internal/models"
)

// handleGetCategories returns the seven categories in display order
func (s *Server) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.svc.Categories())
}

// handleSearchCatalog returns catalog items whose name contains q
func (s *Server) handleSearchCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	var cat models.Category
	if label := r.URL.Query().Get("category"); label != "" {
		c, err := inventory.ParseCategory(label)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		cat = c
	}

	items := s.svc.Catalog().Search(q, cat)
	if items == nil {
		items = []models.CatalogItem{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":       items,
		"total_count": len(items),
	})
}
