package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// BookRef is a denormalized snapshot of a referenced author, genre or
// publisher, copied into the book at write time. It is never refreshed when
// the referenced document changes.
type BookRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	Name string             `bson:"name" json:"name"`
}

type Book struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Author    BookRef            `bson:"author" json:"author"`
	Price     float64            `bson:"price" json:"price"`
	Publisher BookRef            `bson:"publisher" json:"publisher"`
	ItemStock int                `bson:"itemStock" json:"itemStock"`
	Genre     BookRef            `bson:"genre" json:"genre"`
	ISBN      string             `bson:"isbn" json:"isbn"`
	Available bool               `bson:"available" json:"available"`
	BookCover string             `bson:"bookCover,omitempty" json:"bookCover,omitempty"`
}
