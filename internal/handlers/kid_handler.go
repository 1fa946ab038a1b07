package handlers

import (
	"net/http"
	"strconv"
	"time"

	"aicademy/internal/security"
	"aicademy/internal/service"
)

// KidHandler handles kid profile HTTP requests
type KidHandler struct {
	profileService *service.ProfileService
	kidTokenSecret string
	kidTokenTTL    time.Duration
}

// NewKidHandler creates a new kid handler
func NewKidHandler(profileService *service.ProfileService, kidTokenSecret string, kidTokenTTL time.Duration) *KidHandler {
	return &KidHandler{
		profileService: profileService,
		kidTokenSecret: kidTokenSecret,
		kidTokenTTL:    kidTokenTTL,
	}
}

type createKidRequest struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Grade  string `json:"grade"`
	Avatar string `json:"avatar"`
}

// CreateKid adds a kid profile under the authenticated parent
func (h *KidHandler) CreateKid(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())
	if parent == nil {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return
	}

	var req createKidRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	kid, err := h.profileService.AddKid(parent.ID, req.Name, req.Age, req.Grade, req.Avatar)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newKidView(kid))
}

// ListKids returns the authenticated parent's kids, oldest profile first
func (h *KidHandler) ListKids(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())
	if parent == nil {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return
	}

	kids, err := h.profileService.ListKidsForParent(parent.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newKidViews(kids))
}

// KidPicker returns every kid profile for the device-level selection
// screen. The deployment model is one household per install, so this
// listing is deliberately unscoped.
func (h *KidHandler) KidPicker(w http.ResponseWriter, r *http.Request) {
	kids, err := h.profileService.ListAllKids()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newKidViews(kids))
}

type selectKidResponse struct {
	Kid       kidView   `json:"kid"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SelectKid issues a short-lived activity token for the chosen kid.
// Activity modules present it when logging learning sessions.
func (h *KidHandler) SelectKid(w http.ResponseWriter, r *http.Request) {
	kidID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid kid ID", "", nil)
		return
	}

	kid, err := h.profileService.GetKid(kidID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if kid == nil {
		respondWithError(w, http.StatusNotFound, "Kid profile not found", "", nil)
		return
	}

	token, err := security.GenerateKidToken(kid.ID, h.kidTokenSecret, h.kidTokenTTL)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to issue activity token", "kid token generation failed", err)
		return
	}

	respondJSON(w, http.StatusOK, selectKidResponse{
		Kid:       newKidView(kid),
		Token:     token,
		ExpiresAt: time.Now().Add(h.kidTokenTTL),
	})
}
