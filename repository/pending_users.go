package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrPendingUserNotFound = errors.New("pending registration not found")

type PendingUsersRepo struct {
	MongoCollection *mongo.Collection
}

func GetPendingUsersRepo(client *mongo.Client) *PendingUsersRepo {
	return &PendingUsersRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("pending_users"),
	}
}

// CreatePendingUser upserts by email so a re-registration before verifying
// simply refreshes the token.
func (r *PendingUsersRepo) CreatePendingUser(ctx context.Context, pending *model.PendingUser) error {
	timer := utils.TrackDBOperation("update", "pending_users")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.ReplaceOne(ctx,
		bson.M{"email": pending.Email}, pending,
		options.Replace().SetUpsert(true))
	if err != nil {
		utils.TrackError("database", "pending_user_creation_failed")
		return err
	}
	return nil
}

func (r *PendingUsersRepo) FindByToken(ctx context.Context, token string) (*model.PendingUser, error) {
	timer := utils.TrackDBOperation("find", "pending_users")
	defer timer.ObserveDuration()

	var pending model.PendingUser
	err := r.MongoCollection.FindOne(ctx, bson.M{"token": token}).Decode(&pending)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPendingUserNotFound
		}
		utils.TrackError("database", "pending_user_lookup_error")
		return nil, err
	}
	return &pending, nil
}

func (r *PendingUsersRepo) DeleteByEmail(ctx context.Context, email string) error {
	timer := utils.TrackDBOperation("delete", "pending_users")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteOne(ctx, bson.M{"email": email})
	return err
}

// PurgeExpired removes registrations never verified before their deadline.
func (r *PendingUsersRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	timer := utils.TrackDBOperation("delete", "pending_users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteMany(ctx,
		bson.M{"expires_at": bson.M{"$lte": now}})
	if err != nil {
		utils.TrackError("database", "pending_user_purge_failed")
		return 0, err
	}
	return result.DeletedCount, nil
}
