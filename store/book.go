package store

import (
	"context"

	"github.com/biblo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) AllBooks(ctx context.Context) ([]models.Book, error) {
	cur, err := db.Books().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var books []models.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (db *DB) BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var b models.Book
	err := db.Books().FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// InsertBook stores a book whose author/genre/publisher snapshots the caller
// has already resolved.
func (db *DB) InsertBook(ctx context.Context, b *models.Book) (primitive.ObjectID, error) {
	res, err := db.Books().InsertOne(ctx, b)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) UpdateBook(ctx context.Context, id primitive.ObjectID, b *models.Book) (*models.Book, error) {
	set := bson.M{
		"title":     b.Title,
		"author":    b.Author,
		"price":     b.Price,
		"publisher": b.Publisher,
		"itemStock": b.ItemStock,
		"genre":     b.Genre,
		"isbn":      b.ISBN,
		"available": b.Available,
	}
	update := bson.M{"$set": set}
	if b.BookCover != "" {
		set["bookCover"] = b.BookCover
	} else {
		update["$unset"] = bson.M{"bookCover": ""}
	}
	var updated models.Book
	err := db.Books().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (db *DB) DeleteBook(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var deleted models.Book
	err := db.Books().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
