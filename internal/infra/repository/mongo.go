package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRepository[T any] struct {
	mongo *mongo.Database
}

func NewMongoRepository[T any](mongo *mongo.Database) *MongoRepository[T] {
	return &MongoRepository[T]{mongo: mongo}
}

func (r *MongoRepository[T]) Create(ctx context.Context, collectionName string, entity T) (T, error) {
	collection := r.mongo.Collection(collectionName)
	_, err := collection.InsertOne(ctx, entity)
	return entity, err
}

func (r *MongoRepository[T]) FindByCallSid(ctx context.Context, collectionName string, callSid string) (T, error) {
	var entity T
	collection := r.mongo.Collection(collectionName)
	filter := bson.M{"call_sid": callSid}
	err := collection.FindOne(ctx, filter).Decode(&entity)
	return entity, err
}

func (r *MongoRepository[T]) FindAll(ctx context.Context, collectionName string) ([]T, error) {
	collection := r.mongo.Collection(collectionName)
	cursor, err := collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entities []T
	for cursor.Next(ctx) {
		var entity T
		if err := cursor.Decode(&entity); err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (r *MongoRepository[T]) Delete(ctx context.Context, collectionName string, callSid string) error {
	collection := r.mongo.Collection(collectionName)
	filter := bson.M{"call_sid": callSid}
	_, err := collection.DeleteOne(ctx, filter)
	return err
}
