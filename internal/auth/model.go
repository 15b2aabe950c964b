package auth

import "time"

const (
	RoleAdmin     = "admin"
	RoleMessOwner = "mess-owner"
	RoleStudent   = "student"
)

// User is the domain entity.
type User struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	Role      string    `json:"role" bson:"role"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
