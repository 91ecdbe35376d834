package repository

import (
	"context"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type GuestNotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetGuestNotesRepo(client *mongo.Client) *GuestNotesRepo {
	return &GuestNotesRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("guest_notes"),
	}
}

func (r *GuestNotesRepo) CreateGuestNote(ctx context.Context, note *model.GuestNote) error {
	timer := utils.TrackDBOperation("insert", "guest_notes")
	defer timer.ObserveDuration()

	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := r.MongoCollection.InsertOne(ctx, note)
	if err != nil {
		utils.TrackError("database", "guest_note_creation_failed")
		return err
	}
	return nil
}

func (r *GuestNotesRepo) FindByShareID(ctx context.Context, shareID string) (*model.GuestNote, error) {
	timer := utils.TrackDBOperation("find", "guest_notes")
	defer timer.ObserveDuration()

	var note model.GuestNote
	err := r.MongoCollection.FindOne(ctx, bson.M{"share_id": shareID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		utils.TrackError("database", "guest_note_lookup_error")
		return nil, err
	}
	return &note, nil
}

// PurgeOlderThan removes guest notes created at or before cutoff. Guest notes
// have no bin; they expire wholesale.
func (r *GuestNotesRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	timer := utils.TrackDBOperation("delete", "guest_notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteMany(ctx,
		bson.M{"created_at": bson.M{"$lte": cutoff}})
	if err != nil {
		utils.TrackError("database", "guest_note_purge_failed")
		return 0, err
	}
	return result.DeletedCount, nil
}
