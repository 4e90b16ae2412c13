package models

import (
	"strings"
	"time"
)

type Conversation struct {
	ID           string     `json:"id"`
	ParticipantA string     `json:"participant_a"`
	ParticipantB string     `json:"participant_b"`
	Listing      ListingRef `json:"listing"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	return userID != "" && (c.ParticipantA == userID || c.ParticipantB == userID)
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

// PairKey is the order-independent key of a participant pair.
func PairKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + "|" + userB
}

// ValidateParticipants checks a pair before any lookup happens.
func ValidateParticipants(userA, userB string) error {
	userA, userB = strings.TrimSpace(userA), strings.TrimSpace(userB)
	if userA == "" || userB == "" || userA == userB {
		return ErrInvalidParticipants
	}
	return nil
}

// ConversationSummary is one inbox row for a given viewer.
type ConversationSummary struct {
	Conversation     *Conversation `json:"conversation"`
	OtherParticipant *Participant  `json:"other_participant,omitempty"`
	LastMessage      *Message      `json:"last_message,omitempty"`
	UnreadCount      int64         `json:"unread_count"`
}

// ConversationDetail is what a chat view shows in its header.
type ConversationDetail struct {
	Conversation     *Conversation   `json:"conversation"`
	OtherParticipant *Participant    `json:"other_participant"`
	Listing          *ListingSummary `json:"listing,omitempty"`
}
