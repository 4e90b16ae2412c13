package dbmysql

import (
	"time"
)

// Conversation rows are unique per (pair_key, listing_key). pair_key is the sorted
// participant pair and listing_key is "none", "annonce:<id>" or "service:<id>".
type Conversation struct {
	ID           string  `gorm:"primaryKey;size:36"`
	ParticipantA string  `gorm:"size:36;not null;index"`
	ParticipantB string  `gorm:"size:36;not null;index"`
	PairKey      string  `gorm:"size:80;not null;uniqueIndex:idx_conversation_pair_listing,priority:1"`
	ListingKey   string  `gorm:"size:80;not null;uniqueIndex:idx_conversation_pair_listing,priority:2"`
	AnnonceID    *string `gorm:"size:36;index"`
	ServiceID    *string `gorm:"size:36;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time `gorm:"index"`
}
