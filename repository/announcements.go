package repository

import (
	"context"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// announcementDocID pins the banner to a single document; Set is an upsert.
const announcementDocID = "announcement"

type AnnouncementsRepo struct {
	MongoCollection *mongo.Collection
}

func GetAnnouncementsRepo(client *mongo.Client) *AnnouncementsRepo {
	return &AnnouncementsRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("config"),
	}
}

func (r *AnnouncementsRepo) Get(ctx context.Context) (*model.Announcement, error) {
	timer := utils.TrackDBOperation("find", "config")
	defer timer.ObserveDuration()

	var a model.Announcement
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": announcementDocID}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &model.Announcement{ID: announcementDocID}, nil
		}
		utils.TrackError("database", "announcement_lookup_error")
		return nil, err
	}
	return &a, nil
}

func (r *AnnouncementsRepo) Set(ctx context.Context, message, updatedBy string) error {
	timer := utils.TrackDBOperation("update", "config")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": announcementDocID},
		bson.M{"$set": bson.M{
			"message":    message,
			"updated_by": updatedBy,
			"updated_at": time.Now(),
		}},
		options.Update().SetUpsert(true))
	if err != nil {
		utils.TrackError("database", "announcement_update_failed")
	}
	return err
}
