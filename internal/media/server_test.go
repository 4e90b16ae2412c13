package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"prestevent/internal/common"
	"prestevent/internal/dbmongo"
)

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) UploadFile(ctx context.Context, filename, contentType, uploaderID string, content io.Reader) (*dbmongo.MediaFile, error) {
	data, _ := io.ReadAll(content)
	args := m.Called(filename, contentType, uploaderID, string(data))
	file, _ := args.Get(0).(*dbmongo.MediaFile)
	return file, args.Error(1)
}

func (m *MockImageStore) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *dbmongo.MediaFile, error) {
	args := m.Called(fileID)
	r, _ := args.Get(0).(io.ReadCloser)
	file, _ := args.Get(1).(*dbmongo.MediaFile)
	return r, file, args.Error(2)
}

func (m *MockImageStore) DeleteFile(ctx context.Context, fileID, requesterID string) error {
	return m.Called(fileID, requesterID).Error(0)
}

// fakeAuth stands in for TokenManager.RequireAuth: X-User carries the identity.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Header.Get("X-User")
		if user == "" {
			common.WriteError(w, http.StatusUnauthorized, "authorization required")
			return
		}
		next.ServeHTTP(w, r.WithContext(common.WithIdentity(r.Context(), user, "prestataire")))
	})
}

func setupServer(t *testing.T) (*mux.Router, *MockImageStore) {
	store := new(MockImageStore)
	t.Cleanup(func() { store.AssertExpectations(t) })

	r := mux.NewRouter()
	NewHTTPServer(store, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(r, fakeAuth)
	return r, store
}

func multipartBody(t *testing.T, filename, contentType, content string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHTTPServer_Upload(t *testing.T) {
	r, store := setupServer(t)

	t.Run("stores_image", func(t *testing.T) {
		body, ct := multipartBody(t, "salle.png", "image/png", "png-bytes")
		store.On("UploadFile", "salle.png", "image/png", "user-1", "png-bytes").
			Return(&dbmongo.MediaFile{ID: "507f1f77bcf86cd799439011", Filename: "salle.png", Size: 9, ContentType: "image/png", UploadedBy: "user-1"}, nil).
			Once()

		req := httptest.NewRequest(http.MethodPost, "/media", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("X-User", "user-1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"507f1f77bcf86cd799439011"`)
	})

	t.Run("rejects_non_image", func(t *testing.T) {
		body, ct := multipartBody(t, "devis.pdf", "application/pdf", "%PDF")
		store.On("UploadFile", "devis.pdf", "application/pdf", "user-1", "%PDF").
			Return(nil, dbmongo.ErrUnsupportedMedia).
			Once()

		req := httptest.NewRequest(http.MethodPost, "/media", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("X-User", "user-1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("requires_auth", func(t *testing.T) {
		body, ct := multipartBody(t, "salle.png", "image/png", "png-bytes")
		req := httptest.NewRequest(http.MethodPost, "/media", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing_file_field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/media", strings.NewReader("plain"))
		req.Header.Set("Content-Type", "text/plain")
		req.Header.Set("X-User", "user-1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHTTPServer_ServeFile(t *testing.T) {
	r, store := setupServer(t)

	store.On("DownloadFile", "507f1f77bcf86cd799439011").
		Return(io.NopCloser(strings.NewReader("jpeg-bytes")), &dbmongo.MediaFile{
			ID:          "507f1f77bcf86cd799439011",
			Filename:    "salle.jpg",
			Size:        10,
			ContentType: "image/jpeg",
			UploadedAt:  time.Now(),
		}, nil).
		Once()
	store.On("DownloadFile", "nope").Return(nil, nil, dbmongo.ErrInvalidFileID).Once()
	store.On("DownloadFile", "507f191e810c19729de860ea").Return(nil, nil, errors.New("socket closed")).Once()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/507f1f77bcf86cd799439011", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "10", rec.Header().Get("Content-Length"))
	assert.Equal(t, "jpeg-bytes", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/507f191e810c19729de860ea", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHTTPServer_Delete(t *testing.T) {
	r, store := setupServer(t)

	store.On("DeleteFile", "f1", "user-1").Return(nil).Once()
	store.On("DeleteFile", "f1", "user-2").Return(dbmongo.ErrNotOwner).Once()

	req := httptest.NewRequest(http.MethodDelete, "/media/f1", nil)
	req.Header.Set("X-User", "user-2")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/media/f1", nil)
	req.Header.Set("X-User", "user-1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
