// Package media serves listing images over HTTP.
package media

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"prestevent/internal/common"
	"prestevent/internal/dbmongo"
)

// maxUploadSize caps a single image upload.
const maxUploadSize = 10 << 20

type ImageStore interface {
	UploadFile(ctx context.Context, filename, contentType, uploaderID string, content io.Reader) (*dbmongo.MediaFile, error)
	DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *dbmongo.MediaFile, error)
	DeleteFile(ctx context.Context, fileID, requesterID string) error
}

type HTTPServer struct {
	storage ImageStore
	logger  *slog.Logger
}

func NewHTTPServer(storage ImageStore, logger *slog.Logger) *HTTPServer {
	return &HTTPServer{storage: storage, logger: logger}
}

// RegisterRoutes mounts the media endpoints. Reads are public, writes go through auth.
func (s *HTTPServer) RegisterRoutes(r *mux.Router, auth func(http.Handler) http.Handler) {
	r.HandleFunc("/media/{fileId}", s.serveFile).Methods(http.MethodGet)
	r.Handle("/media", auth(http.HandlerFunc(s.upload))).Methods(http.MethodPost)
	r.Handle("/media/{fileId}", auth(http.HandlerFunc(s.deleteFile))).Methods(http.MethodDelete)
}

func (s *HTTPServer) upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	uploaded, err := s.storage.UploadFile(r.Context(), header.Filename, header.Header.Get("Content-Type"), userID, file)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	s.logger.Info("image uploaded", "file_id", uploaded.ID, "user_id", userID, "size", uploaded.Size)
	common.WriteJSON(w, http.StatusCreated, uploaded)
}

func (s *HTTPServer) serveFile(w http.ResponseWriter, r *http.Request) {
	reader, mediaFile, err := s.storage.DownloadFile(r.Context(), mux.Vars(r)["fileId"])
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	defer reader.Close()

	contentType := mediaFile.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(mediaFile.Size, 10))
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")

	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Warn("error streaming file", "file_id", mediaFile.ID, "error", err)
	}
}

func (s *HTTPServer) deleteFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	if err := s.storage.DeleteFile(r.Context(), mux.Vars(r)["fileId"], userID); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dbmongo.ErrInvalidFileID), errors.Is(err, dbmongo.ErrFileNotFound):
		common.WriteError(w, http.StatusNotFound, "file not found")
	case errors.Is(err, dbmongo.ErrUnsupportedMedia):
		common.WriteError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, dbmongo.ErrNotOwner):
		common.WriteError(w, http.StatusForbidden, err.Error())
	default:
		s.logger.Error("media storage failure", "error", err)
		common.WriteError(w, http.StatusInternalServerError, "storage error")
	}
}
