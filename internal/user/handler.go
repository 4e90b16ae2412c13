package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"prestevent/internal/chat/models"
	"prestevent/internal/common"
	"prestevent/internal/dbmysql"
)

// Handler wires the identity HTTP API to UserService.
type Handler struct {
	userService UserService
	logger      *slog.Logger
}

func NewHandler(userService UserService, logger *slog.Logger) *Handler {
	return &Handler{userService: userService, logger: logger}
}

// RegisterRoutes mounts the identity endpoints. /profiles/me is registered before
// /profiles/{id} so it is not captured as an id.
func (h *Handler) RegisterRoutes(r *mux.Router, auth func(http.Handler) http.Handler) {
	r.HandleFunc("/api/v1/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/auth/login", h.Login).Methods(http.MethodPost)
	r.Handle("/api/v1/profiles/me", auth(http.HandlerFunc(h.GetOwnProfile))).Methods(http.MethodGet)
	r.Handle("/api/v1/profiles/me", auth(http.HandlerFunc(h.UpdateOwnProfile))).Methods(http.MethodPut)
	r.HandleFunc("/api/v1/profiles/{id}", h.GetProfile).Methods(http.MethodGet)
	r.Handle("/api/v1/admin/profiles/{id}/featured", auth(http.HandlerFunc(h.SetFeatured))).Methods(http.MethodPut)
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// ProfileResponse is the public view of a profile; contact details stay private.
type ProfileResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Location  string    `json:"location,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Role      string    `json:"role"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnProfileResponse adds the private fields shown to the profile's owner.
type OwnProfileResponse struct {
	ProfileResponse
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
}

type FeaturedRequest struct {
	Featured *bool `json:"featured"`
}

func toOwnProfileResponse(p *dbmysql.Profile) OwnProfileResponse {
	return OwnProfileResponse{
		ProfileResponse: toProfileResponse(p),
		Email:           p.Email,
		Phone:           p.Phone,
		IsAdmin:         p.IsAdmin,
	}
}

func toProfileResponse(p *dbmysql.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Location:  p.Location,
		Bio:       p.Bio,
		Role:      p.Role,
		Featured:  p.Featured,
		CreatedAt: p.CreatedAt,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, token, err := h.userService.Register(r.Context(), req.Email, req.Password, req.FullName, models.Role(req.Role))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, AuthResponse{
		Token:   token,
		UserID:  profile.ID,
		Role:    profile.Role,
		Message: "registration successful",
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, AuthResponse{
		Token:   token,
		UserID:  profile.ID,
		Role:    profile.Role,
		Message: "login successful",
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.GetProfile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (h *Handler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "authorization required")
		return
	}
	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, toOwnProfileResponse(profile))
}

func (h *Handler) UpdateOwnProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "authorization required")
		return
	}
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.userService.UpdateProfile(r.Context(), userID, dbmysql.ProfileUpdate{
		FullName: req.FullName,
		Phone:    req.Phone,
		Location: req.Location,
		Bio:      req.Bio,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, toOwnProfileResponse(profile))
}

func (h *Handler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "authorization required")
		return
	}
	var req FeaturedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Featured == nil {
		common.WriteError(w, http.StatusBadRequest, "featured flag required")
		return
	}

	if err := h.userService.SetFeatured(r.Context(), userID, mux.Vars(r)["id"], *req.Featured); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		common.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrEmailTaken):
		common.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		common.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrForbidden):
		common.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrParticipantNotFound):
		common.WriteError(w, http.StatusNotFound, "profile not found")
	case errors.Is(err, models.ErrStoreUnavailable):
		h.logger.Error("identity store failure", "error", err)
		common.WriteError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		h.logger.Error("identity request failed", "error", err)
		common.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
