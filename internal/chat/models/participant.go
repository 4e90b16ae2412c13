package models

type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "prestataire"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleProvider
}

// Participant is the identity store's view of a user.
type Participant struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarRef   string `json:"avatar_ref,omitempty"`
	Role        Role   `json:"role"`
	Email       string `json:"-"`
}
