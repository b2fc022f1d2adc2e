package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:254" json:"email"`
	FirstName string    `gorm:"size:150" json:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name"`
	Password  string    `json:"-"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	IsStaff   bool      `json:"is_staff"`

	Recipes []*Recipe `gorm:"foreignKey:AuthorID"`
	Timestamp
}

// Follow is a directed subscription: follower reads, followee is the author
// being followed. The composite unique index is the race-safe guard against
// double subscriptions; the self-follow ban is checked in the service layer
// and backed by a CHECK constraint added during migration.
type Follow struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FollowerID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_follower_followee" json:"followee_id"`
	CreatedAt  time.Time `gorm:"type:timestamp" json:"created_at"`

	Follower *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Followee *User `gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE"`
}
