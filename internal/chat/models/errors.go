package models

import "errors"

var (
	// ErrInvalidParticipants covers self-conversations and participant ids unknown to the identity store.
	ErrInvalidParticipants = errors.New("invalid participants")
	// ErrNotParticipant is returned when the caller is not one of the two participants.
	ErrNotParticipant = errors.New("user is not a participant of this conversation")
	// ErrEmptyMessage is returned for empty or whitespace-only content.
	ErrEmptyMessage = errors.New("message content is empty")
	// ErrConflictingListingReference is returned when both an annonce and a service are referenced.
	ErrConflictingListingReference = errors.New("conversation cannot reference both an annonce and a service")
	// ErrStoreUnavailable marks failures of the backing store. Callers may retry with backoff.
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrListingNotFound      = errors.New("listing not found")
)
