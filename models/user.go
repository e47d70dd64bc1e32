package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// User is an account in the directory. Password holds the bcrypt hash and is
// never serialized to JSON. ResetPasswordToken stores the SHA-256 of the token
// mailed out, together with its expiry; both are cleared once used.
type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	Role               string             `bson:"role" json:"role"`
	Password           string             `bson:"password" json:"-"`
	ResetPasswordToken string             `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExp   time.Time          `bson:"resetPasswordExpire,omitempty" json:"-"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
