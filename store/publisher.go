package store

import (
	"context"

	"github.com/biblo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) AllPublishers(ctx context.Context) ([]models.Publisher, error) {
	cur, err := db.Publishers().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var publishers []models.Publisher
	if err := cur.All(ctx, &publishers); err != nil {
		return nil, err
	}
	return publishers, nil
}

func (db *DB) PublisherByID(ctx context.Context, id primitive.ObjectID) (*models.Publisher, error) {
	var p models.Publisher
	err := db.Publishers().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *DB) InsertPublisher(ctx context.Context, p *models.Publisher) (primitive.ObjectID, error) {
	res, err := db.Publishers().InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) UpdatePublisher(ctx context.Context, id primitive.ObjectID, p *models.Publisher) (*models.Publisher, error) {
	var updated models.Publisher
	err := db.Publishers().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": p.Name}},
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

func (db *DB) DeletePublisher(ctx context.Context, id primitive.ObjectID) (*models.Publisher, error) {
	var deleted models.Publisher
	err := db.Publishers().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
