package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"prestevent/internal/chat/models"
	"prestevent/internal/common"
)

// toStatus maps service errors onto gRPC status codes.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, models.ErrInvalidParticipants),
		errors.Is(err, models.ErrEmptyMessage),
		errors.Is(err, models.ErrConflictingListingReference):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, models.ErrNotParticipant):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, models.ErrConversationNotFound),
		errors.Is(err, models.ErrParticipantNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, models.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, "store unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func viewerFromContext(ctx context.Context) (string, error) {
	id, ok := common.UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing identity")
	}
	return id, nil
}
