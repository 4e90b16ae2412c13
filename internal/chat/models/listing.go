package models

import "strings"

type ListingKind string

const (
	ListingNone    ListingKind = ""
	ListingAnnonce ListingKind = "annonce"
	ListingService ListingKind = "service"
)

// ListingRef is the optional listing a conversation originated from.
// At most one of AnnonceID and ServiceID may be set.
type ListingRef struct {
	AnnonceID string `json:"annonce_id,omitempty"`
	ServiceID string `json:"service_id,omitempty"`
}

func AnnonceRef(id string) ListingRef { return ListingRef{AnnonceID: id} }

func ServiceRef(id string) ListingRef { return ListingRef{ServiceID: id} }

// Normalize trims both ids; a whitespace-only id becomes unset.
func (r ListingRef) Normalize() ListingRef {
	return ListingRef{
		AnnonceID: strings.TrimSpace(r.AnnonceID),
		ServiceID: strings.TrimSpace(r.ServiceID),
	}
}

func (r ListingRef) Validate() error {
	if strings.TrimSpace(r.AnnonceID) != "" && strings.TrimSpace(r.ServiceID) != "" {
		return ErrConflictingListingReference
	}
	return nil
}

func (r ListingRef) Kind() ListingKind {
	switch {
	case r.AnnonceID != "":
		return ListingAnnonce
	case r.ServiceID != "":
		return ListingService
	default:
		return ListingNone
	}
}

func (r ListingRef) IsNone() bool { return r.Kind() == ListingNone }

// ID returns the referenced listing id, or "" for no listing.
func (r ListingRef) ID() string {
	if r.AnnonceID != "" {
		return r.AnnonceID
	}
	return r.ServiceID
}

// Key is the canonical storage key of the reference: "none", "annonce:<id>" or "service:<id>".
func (r ListingRef) Key() string {
	if r.IsNone() {
		return "none"
	}
	return string(r.Kind()) + ":" + r.ID()
}

// ParseListingKey is the inverse of Key.
func ParseListingKey(key string) (ListingRef, bool) {
	if key == "none" {
		return ListingRef{}, true
	}
	kind, id, ok := strings.Cut(key, ":")
	if !ok || id == "" {
		return ListingRef{}, false
	}
	switch ListingKind(kind) {
	case ListingAnnonce:
		return AnnonceRef(id), true
	case ListingService:
		return ServiceRef(id), true
	}
	return ListingRef{}, false
}

// ListingSummary is the read-only view of a listing shown next to a conversation.
type ListingSummary struct {
	Kind        ListingKind `json:"kind"`
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}
