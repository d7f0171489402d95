package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserRole string

const (
	UserRoleUser   UserRole = "user"
	UserRoleVendor UserRole = "vendor"
	UserRoleAdmin  UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string        `bson:"name" json:"name"`
	Email     string        `bson:"email" json:"email"`
	PhotoURL  string        `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role      UserRole      `bson:"role" json:"role"`
	Status    UserStatus    `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}
