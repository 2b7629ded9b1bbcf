package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// Identity is what the identity provider vouches for on each request.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName string    `gorm:"type:varchar(255)" json:"first_name"`
	LastName  string    `gorm:"type:varchar(255)" json:"last_name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Role      Role      `gorm:"type:varchar(32);not null;default:'candidate'" json:"role"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
