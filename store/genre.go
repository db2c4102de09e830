package store

import (
	"context"

	"github.com/biblo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) AllGenres(ctx context.Context) ([]models.Genre, error) {
	cur, err := db.Genres().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var genres []models.Genre
	if err := cur.All(ctx, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// GenreByID returns (nil, nil) when no genre exists with the given id.
func (db *DB) GenreByID(ctx context.Context, id primitive.ObjectID) (*models.Genre, error) {
	var g models.Genre
	err := db.Genres().FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (db *DB) InsertGenre(ctx context.Context, g *models.Genre) (primitive.ObjectID, error) {
	res, err := db.Genres().InsertOne(ctx, g)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// UpdateGenre replaces the mutable fields and returns the updated document,
// or (nil, nil) when no genre exists with the given id.
func (db *DB) UpdateGenre(ctx context.Context, id primitive.ObjectID, g *models.Genre) (*models.Genre, error) {
	var updated models.Genre
	err := db.Genres().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": g.Name}},
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

// DeleteGenre removes a genre and returns the deleted document, or
// (nil, nil) when nothing matched.
func (db *DB) DeleteGenre(ctx context.Context, id primitive.ObjectID) (*models.Genre, error) {
	var deleted models.Genre
	err := db.Genres().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
