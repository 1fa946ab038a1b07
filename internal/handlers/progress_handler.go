package handlers

import (
	"net/http"
	"strconv"

	"aicademy/internal/models"
	"aicademy/internal/service"
)

// ProgressHandler handles session logging and progress HTTP requests
type ProgressHandler struct {
	progressService *service.ProgressService
	profileService  *service.ProfileService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService, profileService *service.ProfileService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		profileService:  profileService,
	}
}

type logSessionRequest struct {
	ActivitiesCompleted []string `json:"activities_completed"`
	TotalScore          int      `json:"total_score"`
	TimeSpentMinutes    int      `json:"time_spent_minutes"`
	CertificatesEarned  []string `json:"certificates_earned"`
}

// LogSession records one completed learning session for the kid named
// by the activity token
func (h *ProgressHandler) LogSession(w http.ResponseWriter, r *http.Request) {
	kidID, ok := KidIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Kid activity token required", "", nil)
		return
	}

	var req logSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.progressService.LogSession(kidID, req.ActivitiesCompleted, req.TotalScore, req.TimeSpentMinutes, req.CertificatesEarned)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newSessionView(session))
}

// GetKidProgress returns the derived summary for one of the parent's kids
func (h *ProgressHandler) GetKidProgress(w http.ResponseWriter, r *http.Request) {
	kid, ok := h.parentOwnedKid(w, r)
	if !ok {
		return
	}

	summary, err := h.progressService.GetProgress(kid.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newProgressView(summary))
}

// GetKidSessions returns the session history for one of the parent's kids
func (h *ProgressHandler) GetKidSessions(w http.ResponseWriter, r *http.Request) {
	kid, ok := h.parentOwnedKid(w, r)
	if !ok {
		return
	}

	sessions, err := h.progressService.ListSessions(kid.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views := make([]sessionView, 0, len(sessions))
	for i := range sessions {
		views = append(views, newSessionView(&sessions[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

// GetParentProgress returns the rollup across all of the parent's kids
func (h *ProgressHandler) GetParentProgress(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())
	if parent == nil {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return
	}

	rollup, err := h.progressService.GetParentProgress(parent.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newParentProgressView(rollup))
}

// parentOwnedKid resolves the {id} path parameter and verifies the kid
// belongs to the authenticated parent
func (h *ProgressHandler) parentOwnedKid(w http.ResponseWriter, r *http.Request) (*models.Kid, bool) {
	parent := ParentFromContext(r.Context())
	if parent == nil {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return nil, false
	}

	kidID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid kid ID", "", nil)
		return nil, false
	}

	kid, err := h.profileService.GetKid(kidID)
	if err != nil {
		respondServiceError(w, err)
		return nil, false
	}
	if kid == nil || kid.ParentID != parent.ID {
		respondWithError(w, http.StatusNotFound, "Kid profile not found", "", nil)
		return nil, false
	}

	return kid, true
}
