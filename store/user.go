package store

import (
	"context"

	"github.com/biblo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) AllUsers(ctx context.Context) ([]models.User, error) {
	cur, err := db.Users().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (db *DB) UserByEmail(ctx context.Context, eMail string) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"eMail": eMail}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) InsertUser(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	res, err := db.Users().InsertOne(ctx, u)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// UpdateUser replaces the mutable fields of a user and returns the updated
// document, or (nil, nil) when no user exists with the given id.
func (db *DB) UpdateUser(ctx context.Context, id primitive.ObjectID, u *models.User) (*models.User, error) {
	var updated models.User
	err := db.Users().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"firstName": u.FirstName,
			"lastName":  u.LastName,
			"eMail":     u.EMail,
			"password":  u.Password,
			"isAdmin":   u.IsAdmin,
		}},
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

func (db *DB) DeleteUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var deleted models.User
	err := db.Users().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
