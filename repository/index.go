package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes the filter predicates rely on. Safe to run
// on every startup.
func SetupIndexes(db *mongo.Database) error {
	ctx := context.Background()

	noteIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_deleted", Value: 1}}},
		{Keys: bson.D{{Key: "collaborators.user_id", Value: 1}}},
		{
			Keys:    bson.D{{Key: "share_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		// Retention sweep scans deleted notes by deletion time.
		{Keys: bson.D{{Key: "is_deleted", Value: 1}, {Key: "deleted_at", Value: 1}}},
	}
	if _, err := db.Collection("notes").Indexes().CreateMany(ctx, noteIndexes); err != nil {
		return err
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return err
	}

	pendingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "token", Value: 1}}},
	}
	if _, err := db.Collection("pending_users").Indexes().CreateMany(ctx, pendingIndexes); err != nil {
		return err
	}

	guestIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "share_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}
	if _, err := db.Collection("guest_notes").Indexes().CreateMany(ctx, guestIndexes); err != nil {
		return err
	}

	sessionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_active", Value: 1}}},
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("sessions").Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		return err
	}

	return nil
}
