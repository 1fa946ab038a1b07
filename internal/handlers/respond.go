package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"aicademy/internal/service"
	"aicademy/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorResponse{Error: userMsg})
}

// respondServiceError maps known service errors onto HTTP statuses.
// Unexpected errors are logged and reported as a generic 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var vErr validation.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
	case errors.Is(err, service.ErrEmailTaken):
		respondWithError(w, http.StatusConflict, "An account with this email already exists", "", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
	case errors.Is(err, service.ErrParentNotFound):
		respondWithError(w, http.StatusNotFound, "Parent account not found", "", nil)
	case errors.Is(err, service.ErrKidNotFound):
		respondWithError(w, http.StatusNotFound, "Kid profile not found", "", nil)
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionExpired):
		respondWithError(w, http.StatusUnauthorized, "Session is no longer valid", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "unexpected service error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return false
	}
	return true
}
