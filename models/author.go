package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Author struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Bio         string             `bson:"bio" json:"bio"`
	AuthorPhoto string             `bson:"authorPhoto,omitempty" json:"authorPhoto,omitempty"`
	Born        time.Time          `bson:"born" json:"born"`
	Death       *time.Time         `bson:"death,omitempty" json:"death,omitempty"`
}
