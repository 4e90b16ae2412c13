package dbmongo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrInvalidFileID    = errors.New("invalid file ID")
	ErrFileNotFound     = errors.New("file not found")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrNotOwner         = errors.New("file belongs to another user")
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ImageContentType normalizes a Content-Type header and reports whether listing images may use it.
func ImageContentType(header string) (string, bool) {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return "", false
	}
	mediaType = strings.ToLower(mediaType)
	if mediaType == "image/jpg" {
		mediaType = "image/jpeg"
	}
	return mediaType, allowedImageTypes[mediaType]
}

// MediaStorage keeps listing images in GridFS.
type MediaStorage struct {
	gridFS *gridfs.Bucket
	now    func() time.Time
}

func NewMediaStorage(mongoClient *MongoClient) *MediaStorage {
	return &MediaStorage{
		gridFS: mongoClient.GridFS,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type MediaFile struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func (ms *MediaStorage) UploadFile(ctx context.Context, filename, contentType, uploaderID string, content io.Reader) (*MediaFile, error) {
	ct, ok := ImageContentType(contentType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMedia, contentType)
	}

	uploadedAt := ms.now()
	metadata := bson.M{
		"content_type": ct,
		"uploaded_by":  uploaderID,
		"uploaded_at":  uploadedAt,
	}

	opts := options.GridFSUpload().SetMetadata(metadata)
	stream, err := ms.gridFS.OpenUploadStream(filename, opts)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(deadline)
	}

	size, err := io.Copy(stream, content)
	if err != nil {
		_ = stream.Abort()
		return nil, fmt.Errorf("file copy failed: %w", err)
	}
	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	return &MediaFile{
		ID:          stream.FileID.(primitive.ObjectID).Hex(),
		Filename:    filename,
		Size:        size,
		ContentType: ct,
		UploadedBy:  uploaderID,
		UploadedAt:  uploadedAt,
	}, nil
}

func (ms *MediaStorage) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *MediaFile, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidFileID, fileID)
	}

	stream, err := ms.gridFS.OpenDownloadStream(objectID)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, nil, ErrFileNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("download failed: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetReadDeadline(deadline)
	}

	file := stream.GetFile()
	var metadata bson.M
	if file.Metadata != nil {
		_ = bson.Unmarshal(file.Metadata, &metadata)
	}

	return stream, &MediaFile{
		ID:          fileID,
		Filename:    file.Name,
		Size:        file.Length,
		ContentType: getStringFromMap(metadata, "content_type"),
		UploadedBy:  getStringFromMap(metadata, "uploaded_by"),
		UploadedAt:  file.UploadDate,
	}, nil
}

// DeleteFile removes an image; only its uploader may do so.
func (ms *MediaStorage) DeleteFile(ctx context.Context, fileID, requesterID string) error {
	stream, file, err := ms.DownloadFile(ctx, fileID)
	if err != nil {
		return err
	}
	_ = stream.Close()
	if file.UploadedBy != requesterID {
		return ErrNotOwner
	}

	objectID, _ := primitive.ObjectIDFromHex(fileID)
	if err := ms.gridFS.DeleteContext(ctx, objectID); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrFileNotFound
		}
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

func getStringFromMap(m bson.M, key string) string {
	if m == nil {
		return ""
	}
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
