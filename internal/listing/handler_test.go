package listing

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"prestevent/internal/chat/models"
	"prestevent/internal/common"
	"prestevent/internal/dbmongo"
	"prestevent/internal/dbmysql"
)

// fakeAuth stands in for TokenManager.RequireAuth: X-User and X-Role carry the identity.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Header.Get("X-User")
		if user == "" {
			common.WriteError(w, http.StatusUnauthorized, "authorization required")
			return
		}
		next.ServeHTTP(w, r.WithContext(common.WithIdentity(r.Context(), user, r.Header.Get("X-Role"))))
	})
}

func setupRouter(t *testing.T) (*mux.Router, testDeps) {
	svc, deps := newTestService(t)
	r := mux.NewRouter()
	NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(r, fakeAuth)
	return r, deps
}

func do(r http.Handler, user, role, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User", user)
		req.Header.Set("X-Role", role)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Annonces(t *testing.T) {
	body := `{"title":"Anniversaire 30 ans","description":"Salle et traiteur","event_type":"anniversaire",
		"event_date":"2025-06-21","location":"Nantes","budget_min":800,"images":["img-1"]}`

	t.Run("create_requires_auth", func(t *testing.T) {
		r, _ := setupRouter(t)
		rec := do(r, "", "", http.MethodPost, "/api/v1/annonces", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("create", func(t *testing.T) {
		r, deps := setupRouter(t)
		deps.store.EXPECT().CreateAnnonce(gomock.Any(), gomock.Any()).Return(nil)

		rec := do(r, "client-1", "client", http.MethodPost, "/api/v1/annonces", body)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"new-id"`)
		assert.Contains(t, rec.Body.String(), `"budget_min":800`)
		assert.Contains(t, rec.Body.String(), `"budget_max":null`)
	})

	t.Run("create_as_prestataire", func(t *testing.T) {
		r, _ := setupRouter(t)
		rec := do(r, "pro-1", "prestataire", http.MethodPost, "/api/v1/annonces", body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("create_invalid", func(t *testing.T) {
		r, _ := setupRouter(t)
		rec := do(r, "client-1", "client", http.MethodPost, "/api/v1/annonces", `{"title":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("mine_is_not_an_id", func(t *testing.T) {
		r, deps := setupRouter(t)
		deps.store.EXPECT().ListAnnonces(gomock.Any(), dbmongo.AnnonceFilter{UserID: "client-1"}).
			Return([]*dbmongo.Annonce{{ID: "ann-1", Status: dbmongo.AnnonceDraft}}, nil)

		rec := do(r, "client-1", "client", http.MethodGet, "/api/v1/annonces/mine", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"draft"`)
	})

	t.Run("browse_filters", func(t *testing.T) {
		r, deps := setupRouter(t)
		deps.store.EXPECT().ListAnnonces(gomock.Any(), dbmongo.AnnonceFilter{
			Status: dbmongo.AnnonceActive, EventType: "mariage", Location: "Lyon", FeaturedOnly: true, Limit: 10,
		}).Return([]*dbmongo.Annonce{}, nil)

		rec := do(r, "", "", http.MethodGet, "/api/v1/annonces?event_type=mariage&location=Lyon&featured=true&limit=10", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("get_missing", func(t *testing.T) {
		r, deps := setupRouter(t)
		deps.store.EXPECT().GetAnnonce(gomock.Any(), "ghost").Return(nil, models.ErrListingNotFound)
		rec := do(r, "", "", http.MethodGet, "/api/v1/annonces/ghost", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete_by_owner", func(t *testing.T) {
		r, deps := setupRouter(t)
		deps.store.EXPECT().GetAnnonce(gomock.Any(), "ann-1").Return(&dbmongo.Annonce{ID: "ann-1", UserID: "client-1"}, nil)
		deps.store.EXPECT().DeleteAnnonce(gomock.Any(), "ann-1", "client-1").Return(nil)
		rec := do(r, "client-1", "client", http.MethodDelete, "/api/v1/annonces/ann-1", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("feature_needs_admin", func(t *testing.T) {
		r, deps := setupRouter(t)
		deps.profiles.EXPECT().IsAdmin(gomock.Any(), "client-1").Return(false, nil)
		rec := do(r, "client-1", "client", http.MethodPut, "/api/v1/admin/annonces/ann-1/featured", `{"featured":true}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("feature_store_down", func(t *testing.T) {
		r, deps := setupRouter(t)
		deps.profiles.EXPECT().IsAdmin(gomock.Any(), "admin-1").Return(true, nil)
		deps.store.EXPECT().SetAnnonceFeatured(gomock.Any(), "ann-1", true, testNow).Return(models.ErrStoreUnavailable)
		rec := do(r, "admin-1", "client", http.MethodPut, "/api/v1/admin/annonces/ann-1/featured", `{"featured":true}`)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHandler_Services(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		r, deps := setupRouter(t)
		deps.store.EXPECT().CreateService(gomock.Any(), gomock.Any()).Return(nil)
		rec := do(r, "pro-1", "prestataire", http.MethodPost, "/api/v1/services",
			`{"name":"Photographe","description":"Reportage complet","category":"photo","price_min":400,"price_max":1200}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"category":"photo"`)
	})

	t.Run("update_by_other", func(t *testing.T) {
		r, deps := setupRouter(t)
		deps.store.EXPECT().GetService(gomock.Any(), "srv-1").Return(&dbmongo.Service{ID: "srv-1", UserID: "pro-1"}, nil)
		rec := do(r, "pro-2", "prestataire", http.MethodPut, "/api/v1/services/srv-1",
			`{"name":"Photographe","description":"x","category":"photo"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("mine", func(t *testing.T) {
		r, deps := setupRouter(t)
		deps.store.EXPECT().ListServices(gomock.Any(), dbmongo.ServiceFilter{UserID: "pro-1"}).Return([]*dbmongo.Service{}, nil)
		rec := do(r, "pro-1", "prestataire", http.MethodGet, "/api/v1/services/mine", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("get_with_owner", func(t *testing.T) {
		r, deps := setupRouter(t)
		deps.store.EXPECT().GetService(gomock.Any(), "srv-1").
			Return(&dbmongo.Service{ID: "srv-1", UserID: "pro-1", Status: dbmongo.ServiceActive}, nil)
		deps.profiles.EXPECT().GetProfile(gomock.Any(), "pro-1").
			Return(&dbmysql.Profile{ID: "pro-1", FullName: "Studio Lumière", Email: "private@x.fr", Role: "prestataire"}, nil)

		rec := do(r, "", "", http.MethodGet, "/api/v1/services/srv-1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"owner":{"id":"pro-1","full_name":"Studio Lumière"`)
		assert.NotContains(t, rec.Body.String(), "private@x.fr")
	})
}

func TestHandler_Providers(t *testing.T) {
	t.Run("directory", func(t *testing.T) {
		r, deps := setupRouter(t)
		deps.store.EXPECT().ProviderIDsWithCategory(gomock.Any(), "traiteur").Return([]string{"pro-1"}, nil)
		deps.profiles.EXPECT().ListProviders(gomock.Any(), dbmysql.ProviderFilter{Location: "Paris", IDs: []string{"pro-1"}}).
			Return([]*dbmysql.Profile{{ID: "pro-1", FullName: "Chez Paul", Role: "prestataire", Featured: true}}, nil)
		deps.store.EXPECT().CountActiveServices(gomock.Any(), "pro-1").Return(int64(2), nil)

		rec := do(r, "", "", http.MethodGet, "/api/v1/providers?location=Paris&category=traiteur", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":"pro-1","full_name":"Chez Paul","role":"prestataire","featured":true,"active_services":2}]`,
			rec.Body.String())
	})

	t.Run("detail_of_client", func(t *testing.T) {
		r, deps := setupRouter(t)
		deps.profiles.EXPECT().GetProfile(gomock.Any(), "client-1").Return(&dbmysql.Profile{ID: "client-1", Role: "client"}, nil)
		rec := do(r, "", "", http.MethodGet, "/api/v1/providers/client-1", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
