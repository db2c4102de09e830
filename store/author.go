package store

import (
	"context"

	"github.com/biblo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) AllAuthors(ctx context.Context) ([]models.Author, error) {
	cur, err := db.Authors().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var authors []models.Author
	if err := cur.All(ctx, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

func (db *DB) AuthorByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error) {
	var a models.Author
	err := db.Authors().FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (db *DB) InsertAuthor(ctx context.Context, a *models.Author) (primitive.ObjectID, error) {
	res, err := db.Authors().InsertOne(ctx, a)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) UpdateAuthor(ctx context.Context, id primitive.ObjectID, a *models.Author) (*models.Author, error) {
	set := bson.M{
		"name": a.Name,
		"bio":  a.Bio,
		"born": a.Born,
	}
	update := bson.M{"$set": set}
	if a.AuthorPhoto != "" {
		set["authorPhoto"] = a.AuthorPhoto
	} else {
		update["$unset"] = bson.M{"authorPhoto": ""}
	}
	if a.Death != nil {
		set["death"] = *a.Death
	} else {
		unset, _ := update["$unset"].(bson.M)
		if unset == nil {
			unset = bson.M{}
			update["$unset"] = unset
		}
		unset["death"] = ""
	}
	var updated models.Author
	err := db.Authors().FindOneAndUpdate(ctx,
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

func (db *DB) DeleteAuthor(ctx context.Context, id primitive.ObjectID) (*models.Author, error) {
	var deleted models.Author
	err := db.Authors().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
