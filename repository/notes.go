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

// ErrNoteNotFound is returned when no note matches the given filter. Callers
// that checked visibility separately can translate a zero-match update into a
// version conflict instead.
var ErrNoteNotFound = errors.New("note not found")

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("notes"),
	}
}

// visibleFilter matches a note the caller may read: owned or collaborating.
// This is the only place the ownership/sharing predicate lives.
func visibleFilter(noteID, callerID string) bson.M {
	return bson.M{
		"_id": noteID,
		"$or": []bson.M{
			{"user_id": callerID},
			{"collaborators.user_id": callerID},
		},
	}
}

// CreateNote inserts a new note with its initial version.
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	if note.UserID == "" {
		return errors.New("user ID is required")
	}

	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now
	note.Version = 1

	_, err := r.MongoCollection.InsertOne(ctx, note)
	if err != nil {
		utils.TrackError("database", "note_creation_failed")
		return err
	}

	utils.TrackNoteOperation("create")
	return nil
}

// GetVisibleNote fetches a note the caller owns or collaborates on.
func (r *NotesRepo) GetVisibleNote(ctx context.Context, noteID, callerID string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, visibleFilter(noteID, callerID)).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		utils.TrackError("database", "note_lookup_error")
		return nil, err
	}
	return &note, nil
}

// GetOwnedNote fetches a note only if callerID is its owner.
func (r *NotesRepo) GetOwnedNote(ctx context.Context, noteID, ownerID string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": noteID, "user_id": ownerID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		utils.TrackError("database", "note_lookup_error")
		return nil, err
	}
	return &note, nil
}

// ListOwned returns the caller's active notes, most recently updated first.
func (r *NotesRepo) ListOwned(ctx context.Context, userID string) ([]*model.Note, error) {
	return r.findNotes(ctx, bson.M{"user_id": userID, "is_deleted": false},
		bson.D{{Key: "updated_at", Value: -1}})
}

// ListBin returns the caller's soft-deleted notes, most recently deleted first.
func (r *NotesRepo) ListBin(ctx context.Context, userID string) ([]*model.Note, error) {
	return r.findNotes(ctx, bson.M{"user_id": userID, "is_deleted": true},
		bson.D{{Key: "deleted_at", Value: -1}})
}

// ListCollaborating returns active notes where the caller is a collaborator.
func (r *NotesRepo) ListCollaborating(ctx context.Context, userID string) ([]*model.Note, error) {
	return r.findNotes(ctx,
		bson.M{"collaborators.user_id": userID, "is_deleted": false},
		bson.D{{Key: "updated_at", Value: -1}})
}

// ListSharedByMe returns the caller's active notes that have at least one collaborator.
func (r *NotesRepo) ListSharedByMe(ctx context.Context, userID string) ([]*model.Note, error) {
	return r.findNotes(ctx, bson.M{
		"user_id":    userID,
		"is_deleted": false,
		"collaborators.0": bson.M{
			"$exists": true,
		},
	}, bson.D{{Key: "updated_at", Value: -1}})
}

func (r *NotesRepo) findNotes(ctx context.Context, filter bson.M, sort bson.D) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var notes []*model.Note
	opts := options.Find().SetSort(sort)

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "note_list_error")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote applies the given field updates to a note, guarded by the
// expected version. Returns the number of matched documents; a zero match on
// a note known to exist means the version moved underneath the caller.
func (r *NotesRepo) UpdateNote(ctx context.Context, noteID string, expectedVersion int, set bson.M) (int64, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	set["updated_at"] = time.Now()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID, "version": expectedVersion},
		bson.M{
			"$set": set,
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		utils.TrackError("database", "note_update_failed")
		return 0, err
	}

	if result.MatchedCount > 0 {
		utils.TrackNoteOperation("update")
	}
	return result.MatchedCount, nil
}

// SoftDelete marks a note deleted and stamps deleted_at in the same write.
func (r *NotesRepo) SoftDelete(ctx context.Context, noteID string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	now := time.Now()
	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID, "is_deleted": false},
		bson.M{"$set": bson.M{
			"is_deleted": true,
			"deleted_at": now,
			"updated_at": now,
		}})
	if err != nil {
		utils.TrackError("database", "note_soft_delete_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}

	utils.TrackNoteOperation("soft_delete")
	return nil
}

// Restore flips a soft-deleted note back to active and clears deleted_at.
func (r *NotesRepo) Restore(ctx context.Context, noteID string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID, "is_deleted": true},
		bson.M{
			"$set":   bson.M{"is_deleted": false, "updated_at": time.Now()},
			"$unset": bson.M{"deleted_at": ""},
		})
	if err != nil {
		utils.TrackError("database", "note_restore_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}

	utils.TrackNoteOperation("restore")
	return nil
}

// PermanentDelete hard-removes a single note owned by ownerID.
func (r *NotesRepo) PermanentDelete(ctx context.Context, noteID, ownerID string) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": noteID, "user_id": ownerID})
	if err != nil {
		utils.TrackError("database", "note_purge_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}

	utils.TrackNoteOperation("purge")
	return nil
}

// EmptyBin hard-removes every soft-deleted note owned by ownerID in one
// store-level bulk delete.
func (r *NotesRepo) EmptyBin(ctx context.Context, ownerID string) (int64, error) {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteMany(ctx,
		bson.M{"user_id": ownerID, "is_deleted": true})
	if err != nil {
		utils.TrackError("database", "empty_bin_failed")
		return 0, err
	}
	return result.DeletedCount, nil
}

// PurgeExpired hard-removes every note, regardless of owner, whose soft
// deletion happened at or before cutoff. Idempotent by construction.
func (r *NotesRepo) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteMany(ctx, bson.M{
		"is_deleted": true,
		"deleted_at": bson.M{"$lte": cutoff},
	})
	if err != nil {
		utils.TrackError("database", "retention_purge_failed")
		return 0, err
	}
	return result.DeletedCount, nil
}

// AddCollaborator appends a collaborator entry. Duplicate checks happen in the
// usecase layer before this write.
func (r *NotesRepo) AddCollaborator(ctx context.Context, noteID string, collab model.Collaborator) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID},
		bson.M{
			"$push": bson.M{"collaborators": collab},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		utils.TrackError("database", "collaborator_add_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// RemoveCollaborator pulls the entry matching userID from one note.
func (r *NotesRepo) RemoveCollaborator(ctx context.Context, noteID, userID string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID},
		bson.M{
			"$pull": bson.M{"collaborators": bson.M{"user_id": userID}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		utils.TrackError("database", "collaborator_remove_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// RemoveUserFromAllCollaborations pulls userID out of every collaborator list
// it appears in. Used by the admin ban cascade; two independent writes with
// the ban flag, not a transaction.
func (r *NotesRepo) RemoveUserFromAllCollaborations(ctx context.Context, userID string) (int64, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"collaborators.user_id": userID},
		bson.M{"$pull": bson.M{"collaborators": bson.M{"user_id": userID}}})
	if err != nil {
		utils.TrackError("database", "collaboration_cascade_failed")
		return 0, err
	}
	return result.ModifiedCount, nil
}

// SetPrivacy turns the private gate on in a single write that also revokes
// the public share link, keeping the private/shared exclusivity invariant.
func (r *NotesRepo) SetPrivacy(ctx context.Context, noteID, passwordHash, passwordHint string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID},
		bson.M{
			"$set": bson.M{
				"is_private":    true,
				"password_hash": passwordHash,
				"password_hint": passwordHint,
				"is_shared":     false,
				"updated_at":    time.Now(),
			},
			"$unset": bson.M{
				"share_id":          "",
				"share_permissions": "",
			},
		})
	if err != nil {
		utils.TrackError("database", "note_privacy_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// ClearPrivacy removes the private gate. The share link is not regenerated;
// the owner has to share again explicitly.
func (r *NotesRepo) ClearPrivacy(ctx context.Context, noteID string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID},
		bson.M{
			"$set": bson.M{"is_private": false, "updated_at": time.Now()},
			"$unset": bson.M{
				"password_hash": "",
				"password_hint": "",
			},
		})
	if err != nil {
		utils.TrackError("database", "note_privacy_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// SetShare enables the anonymous read link on a non-private note.
func (r *NotesRepo) SetShare(ctx context.Context, noteID, shareID, permissions string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID, "is_private": false},
		bson.M{"$set": bson.M{
			"is_shared":         true,
			"share_id":          shareID,
			"share_permissions": permissions,
			"updated_at":        time.Now(),
		}})
	if err != nil {
		utils.TrackError("database", "note_share_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}

	utils.TrackNoteOperation("share")
	return nil
}

// ClearShare revokes the anonymous read link.
func (r *NotesRepo) ClearShare(ctx context.Context, noteID string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID},
		bson.M{
			"$set": bson.M{"is_shared": false, "updated_at": time.Now()},
			"$unset": bson.M{
				"share_id":          "",
				"share_permissions": "",
			},
		})
	if err != nil {
		utils.TrackError("database", "note_unshare_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// FindByShareID resolves a public share link. Soft-deleted and private notes
// never resolve.
func (r *NotesRepo) FindByShareID(ctx context.Context, shareID string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{
		"share_id":   shareID,
		"is_shared":  true,
		"is_deleted": false,
	}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		utils.TrackError("database", "share_lookup_error")
		return nil, err
	}
	return &note, nil
}

// CountUserNotes counts all of a user's notes, deleted included.
func (r *NotesRepo) CountUserNotes(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "notes")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
