package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"lineaged/internal/domain"
	"lineaged/internal/service"
)

// TreeHandler handles family-tree API requests
type TreeHandler struct {
	svc *service.TreeService
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(svc *service.TreeService) *TreeHandler {
	return &TreeHandler{svc: svc}
}

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ValidateGEDCOM runs the dry-run parse and returns the preview report
func (h *TreeHandler) ValidateGEDCOM(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, "Failed to read request body", err.Error(), http.StatusBadRequest)
		return
	}

	report := h.svc.ValidateGEDCOM(data)
	h.writeJSON(w, report, http.StatusOK)
}

// ImportGEDCOM parses and commits a GEDCOM file
func (h *TreeHandler) ImportGEDCOM(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, "Failed to read request body", err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.ImportGEDCOM(r.Context(), data)
	if err != nil {
		log.Printf("Failed to import GEDCOM: %v", err)
		h.writeError(w, "Failed to import GEDCOM", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, result, http.StatusOK)
}

// ExportGEDCOM exports the stored tree as a GEDCOM download
func (h *TreeHandler) ExportGEDCOM(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=family-tree.ged")

	if err := h.svc.ExportGEDCOM(r.Context(), w); err != nil {
		log.Printf("Failed to export GEDCOM: %v", err)
		// Can't write error response as we already set headers
		return
	}
}

// ImportYAML imports tree data from YAML
func (h *TreeHandler) ImportYAML(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, "Failed to read request body", err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.ImportYAML(r.Context(), data)
	if err != nil {
		log.Printf("Failed to import YAML: %v", err)
		h.writeError(w, "Failed to import YAML", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, result, http.StatusOK)
}

// ExportYAML exports the stored tree as YAML
func (h *TreeHandler) ExportYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Content-Disposition", "attachment; filename=family-tree.yml")

	if err := h.svc.ExportYAML(r.Context(), w); err != nil {
		log.Printf("Failed to export YAML: %v", err)
		// Can't write error response as we already set headers
		return
	}
}

// GetTree returns the complete entity graph
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.GetTree(r.Context())
	if err != nil {
		log.Printf("Failed to get tree: %v", err)
		h.writeError(w, "Failed to get tree", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, tree, http.StatusOK)
}

// ClearTree removes every stored entity
func (h *TreeHandler) ClearTree(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearTree(r.Context()); err != nil {
		log.Printf("Failed to clear tree: %v", err)
		h.writeError(w, "Failed to clear tree", err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetStats returns entity counts
func (h *TreeHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetStats(r.Context())
	if err != nil {
		log.Printf("Failed to get stats: %v", err)
		h.writeError(w, "Failed to get stats", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, stats, http.StatusOK)
}

// ListPersons returns all persons
func (h *TreeHandler) ListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.svc.ListPersons(r.Context())
	if err != nil {
		log.Printf("Failed to list persons: %v", err)
		h.writeError(w, "Failed to list persons", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, persons, http.StatusOK)
}

// GetPerson returns a single person
func (h *TreeHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid person ID", "Person ID is required", http.StatusBadRequest)
		return
	}

	p, err := h.svc.GetPerson(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to get person: %v", err)
		h.writeError(w, "Failed to get person", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, p, http.StatusOK)
}

// CreatePerson creates a new person
func (h *TreeHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req domain.Individual
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	p := domain.NewIndividual(req.GivenName, req.Surname)
	p.Sex = domain.ParseSex(string(req.Sex))
	p.Living = req.Living
	p.BirthDate = req.BirthDate
	p.BirthPlace = req.BirthPlace
	p.DeathDate = req.DeathDate
	p.DeathPlace = req.DeathPlace
	p.Occupation = req.Occupation
	p.Notes = req.Notes

	if err := h.svc.CreatePerson(r.Context(), p); err != nil {
		log.Printf("Failed to create person: %v", err)
		h.writeError(w, "Failed to create person", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, p, http.StatusCreated)
}

// UpdatePerson updates an existing person
func (h *TreeHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid person ID", "Person ID is required", http.StatusBadRequest)
		return
	}

	var p domain.Individual
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	p.ID = id

	if err := h.svc.UpdatePerson(r.Context(), &p); err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to update person: %v", err)
		h.writeError(w, "Failed to update person", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, &p, http.StatusOK)
}

// DeletePerson removes a person
func (h *TreeHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid person ID", "Person ID is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeletePerson(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to delete person: %v", err)
		h.writeError(w, "Failed to delete person", err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListFamilies returns all families
func (h *TreeHandler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	families, err := h.svc.ListFamilies(r.Context())
	if err != nil {
		log.Printf("Failed to list families: %v", err)
		h.writeError(w, "Failed to list families", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, families, http.StatusOK)
}

// GetFamily returns a single family
func (h *TreeHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid family ID", "Family ID is required", http.StatusBadRequest)
		return
	}

	f, err := h.svc.GetFamily(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to get family: %v", err)
		h.writeError(w, "Failed to get family", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, f, http.StatusOK)
}

// CreateFamily creates a new family
func (h *TreeHandler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req domain.Family
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	f := domain.NewFamily()
	f.HusbandID = req.HusbandID
	f.WifeID = req.WifeID
	f.ChildIDs = req.ChildIDs
	f.MarriageDate = req.MarriageDate
	f.MarriagePlace = req.MarriagePlace
	f.DivorceDate = req.DivorceDate

	if err := h.svc.CreateFamily(r.Context(), f); err != nil {
		log.Printf("Failed to create family: %v", err)
		h.writeError(w, "Failed to create family", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, f, http.StatusCreated)
}

// DeleteFamily removes a family
func (h *TreeHandler) DeleteFamily(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid family ID", "Family ID is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteFamily(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to delete family: %v", err)
		h.writeError(w, "Failed to delete family", err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper methods

func (h *TreeHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *TreeHandler) writeError(w http.ResponseWriter, message, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   message,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
