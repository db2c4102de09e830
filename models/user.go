package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	EMail     string             `bson:"eMail" json:"eMail"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash
	IsAdmin   bool               `bson:"isAdmin" json:"isAdmin"`
}

// UserResponse is the public projection of a User. The password hash never
// appears in a response body.
type UserResponse struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	EMail     string `json:"eMail"`
	IsAdmin   bool   `json:"isAdmin"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID.Hex(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		EMail:     u.EMail,
		IsAdmin:   u.IsAdmin,
	}
}
