package listing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"prestevent/internal/chat/models"
	"prestevent/internal/common"
)

// Handler exposes listings and the provider directory over HTTP.
type Handler struct {
	svc    ListingService
	logger *slog.Logger
}

func NewHandler(svc ListingService, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the listing endpoints. Browsing is public; /mine routes come
// before /{id} so they are not captured as ids.
func (h *Handler) RegisterRoutes(r *mux.Router, auth func(http.Handler) http.Handler) {
	protect := func(f http.HandlerFunc) http.Handler { return auth(f) }

	r.HandleFunc("/api/v1/annonces", h.browseAnnonces).Methods(http.MethodGet)
	r.Handle("/api/v1/annonces", protect(h.createAnnonce)).Methods(http.MethodPost)
	r.Handle("/api/v1/annonces/mine", protect(h.myAnnonces)).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/annonces/{id}", h.getAnnonce).Methods(http.MethodGet)
	r.Handle("/api/v1/annonces/{id}", protect(h.updateAnnonce)).Methods(http.MethodPut)
	r.Handle("/api/v1/annonces/{id}", protect(h.deleteAnnonce)).Methods(http.MethodDelete)
	r.Handle("/api/v1/admin/annonces/{id}/featured", protect(h.featureAnnonce)).Methods(http.MethodPut)

	r.HandleFunc("/api/v1/services", h.browseServices).Methods(http.MethodGet)
	r.Handle("/api/v1/services", protect(h.createService)).Methods(http.MethodPost)
	r.Handle("/api/v1/services/mine", protect(h.myServices)).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/services/{id}", h.getService).Methods(http.MethodGet)
	r.Handle("/api/v1/services/{id}", protect(h.updateService)).Methods(http.MethodPut)
	r.Handle("/api/v1/services/{id}", protect(h.deleteService)).Methods(http.MethodDelete)

	r.HandleFunc("/api/v1/providers", h.providerDirectory).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/providers/{id}", h.providerDetail).Methods(http.MethodGet)
}

func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "authorization required")
	}
	return id, ok
}

func queryLimit(r *http.Request) int64 {
	n, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	return n
}

func queryBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}

func (h *Handler) browseAnnonces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.BrowseAnnonces(r.Context(), AnnonceQuery{
		EventType:    q.Get("event_type"),
		Location:     q.Get("location"),
		FeaturedOnly: queryBool(r, "featured"),
		Limit:        queryLimit(r),
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) createAnnonce(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in AnnonceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, err := h.svc.CreateAnnonce(r.Context(), userID, common.RoleFromContext(r.Context()), in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) myAnnonces(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	items, err := h.svc.MyAnnonces(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) getAnnonce(w http.ResponseWriter, r *http.Request) {
	viewer, _ := common.UserIDFromContext(r.Context())
	detail, err := h.svc.GetAnnonce(r.Context(), viewer, mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) updateAnnonce(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in AnnonceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, err := h.svc.UpdateAnnonce(r.Context(), userID, mux.Vars(r)["id"], in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) deleteAnnonce(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteAnnonce(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) featureAnnonce(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Featured *bool `json:"featured"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Featured == nil {
		common.WriteError(w, http.StatusBadRequest, "featured flag required")
		return
	}
	if err := h.svc.SetAnnonceFeatured(r.Context(), userID, mux.Vars(r)["id"], *req.Featured); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) browseServices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.BrowseServices(r.Context(), ServiceQuery{
		Category: q.Get("category"),
		Location: q.Get("location"),
		Limit:    queryLimit(r),
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) createService(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in ServiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	svc, err := h.svc.CreateService(r.Context(), userID, common.RoleFromContext(r.Context()), in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, svc)
}

func (h *Handler) myServices(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	items, err := h.svc.MyServices(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) getService(w http.ResponseWriter, r *http.Request) {
	viewer, _ := common.UserIDFromContext(r.Context())
	detail, err := h.svc.GetService(r.Context(), viewer, mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) updateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in ServiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	svc, err := h.svc.UpdateService(r.Context(), userID, mux.Vars(r)["id"], in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, svc)
}

func (h *Handler) deleteService(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteService(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) providerDirectory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cards, err := h.svc.ProviderDirectory(r.Context(), ProviderQuery{
		Location:     q.Get("location"),
		Category:     q.Get("category"),
		FeaturedOnly: queryBool(r, "featured"),
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, cards)
}

func (h *Handler) providerDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.ProviderDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		common.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		common.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrListingNotFound):
		common.WriteError(w, http.StatusNotFound, "listing not found")
	case errors.Is(err, models.ErrParticipantNotFound):
		common.WriteError(w, http.StatusNotFound, "provider not found")
	case errors.Is(err, models.ErrStoreUnavailable):
		h.logger.Error("listing store failure", "error", err)
		common.WriteError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		h.logger.Error("listing request failed", "error", err)
		common.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
