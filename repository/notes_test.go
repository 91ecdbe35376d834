package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"main/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newTestNotesRepo connects to the local MongoDB and hands back a repo bound
// to a throwaway collection. Skips when no server is reachable.
func newTestNotesRepo(t *testing.T) *NotesRepo {
	t.Helper()
	os.Setenv("GO_ENV", "test")

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("mongodb not available: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("mongodb not available: %v", err)
	}

	coll := client.Database("notesbin_test").Collection("notes_" + uuid.New().String()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = coll.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return &NotesRepo{MongoCollection: coll}
}

func newNote(userID string) *model.Note {
	return &model.Note{
		ID:      uuid.New().String(),
		UserID:  userID,
		Title:   "test note",
		Content: "content",
	}
}

func TestCreateAndGetVisibleNote(t *testing.T) {
	repo := newTestNotesRepo(t)
	ctx := context.Background()

	note := newNote("owner")
	require.NoError(t, repo.CreateNote(ctx, note))
	assert.Equal(t, 1, note.Version)

	got, err := repo.GetVisibleNote(ctx, note.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)
	assert.Equal(t, 1, got.Version)

	// Not visible to a stranger.
	_, err = repo.GetVisibleNote(ctx, note.ID, "stranger")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestVisibleNoteForCollaborator(t *testing.T) {
	repo := newTestNotesRepo(t)
	ctx := context.Background()

	note := newNote("owner")
	require.NoError(t, repo.CreateNote(ctx, note))
	require.NoError(t, repo.AddCollaborator(ctx, note.ID, model.Collaborator{
		UserID: "friend", Permission: model.PermissionView,
	}))

	got, err := repo.GetVisibleNote(ctx, note.ID, "friend")
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)

	// Ownership check stays strict.
	_, err = repo.GetOwnedNote(ctx, note.ID, "friend")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestUpdateNoteVersionGuard(t *testing.T) {
	repo := newTestNotesRepo(t)
	ctx := context.Background()

	note := newNote("owner")
	require.NoError(t, repo.CreateNote(ctx, note))

	matched, err := repo.UpdateNote(ctx, note.ID, 1, bson.M{"title": "first edit"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	// A stale version matches nothing.
	matched, err = repo.UpdateNote(ctx, note.ID, 1, bson.M{"title": "stale edit"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), matched)

	got, err := repo.GetVisibleNote(ctx, note.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, "first edit", got.Title)
	assert.Equal(t, 2, got.Version)
}

func TestSoftDeleteRestoreCycle(t *testing.T) {
	repo := newTestNotesRepo(t)
	ctx := context.Background()

	note := newNote("owner")
	require.NoError(t, repo.CreateNote(ctx, note))

	require.NoError(t, repo.SoftDelete(ctx, note.ID))
	got, err := repo.GetVisibleNote(ctx, note.ID, "owner")
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
	require.NotNil(t, got.DeletedAt)

	// Double delete is a no-match.
	assert.ErrorIs(t, repo.SoftDelete(ctx, note.ID), ErrNoteNotFound)

	require.NoError(t, repo.Restore(ctx, note.ID))
	got, err = repo.GetVisibleNote(ctx, note.ID, "owner")
	require.NoError(t, err)
	assert.False(t, got.IsDeleted)
	assert.Nil(t, got.DeletedAt)

	// Restoring an active note is a no-match too.
	assert.ErrorIs(t, repo.Restore(ctx, note.ID), ErrNoteNotFound)
}

func TestEmptyBinScopedToOwner(t *testing.T) {
	repo := newTestNotesRepo(t)
	ctx := context.Background()

	mine := newNote("me")
	theirs := newNote("them")
	require.NoError(t, repo.CreateNote(ctx, mine))
	require.NoError(t, repo.CreateNote(ctx, theirs))
	require.NoError(t, repo.SoftDelete(ctx, mine.ID))
	require.NoError(t, repo.SoftDelete(ctx, theirs.ID))

	deleted, err := repo.EmptyBin(ctx, "me")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// The other user's bin is untouched.
	bin, err := repo.ListBin(ctx, "them")
	require.NoError(t, err)
	assert.Len(t, bin, 1)
}

func TestPurgeExpiredHonorsCutoff(t *testing.T) {
	repo := newTestNotesRepo(t)
	ctx := context.Background()

	old := newNote("owner")
	fresh := newNote("owner")
	require.NoError(t, repo.CreateNote(ctx, old))
	require.NoError(t, repo.CreateNote(ctx, fresh))
	require.NoError(t, repo.SoftDelete(ctx, old.ID))
	require.NoError(t, repo.SoftDelete(ctx, fresh.ID))

	// Backdate the old note past the retention window.
	past := time.Now().AddDate(0, 0, -31)
	_, err := repo.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": old.ID},
		bson.M{"$set": bson.M{"deleted_at": past}})
	require.NoError(t, err)

	cutoff := time.Now().AddDate(0, 0, -30)
	purged, err := repo.PurgeExpired(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = repo.GetVisibleNote(ctx, old.ID, "owner")
	assert.ErrorIs(t, err, ErrNoteNotFound)
	_, err = repo.GetVisibleNote(ctx, fresh.ID, "owner")
	assert.NoError(t, err)

	// Running again purges nothing.
	purged, err = repo.PurgeExpired(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(0), purged)
}

func TestSetPrivacyRevokesShare(t *testing.T) {
	repo := newTestNotesRepo(t)
	ctx := context.Background()

	note := newNote("owner")
	require.NoError(t, repo.CreateNote(ctx, note))
	require.NoError(t, repo.SetShare(ctx, note.ID, "share-abc", model.PermissionView))

	require.NoError(t, repo.SetPrivacy(ctx, note.ID, "hashed-secret", "a hint"))

	got, err := repo.GetVisibleNote(ctx, note.ID, "owner")
	require.NoError(t, err)
	assert.True(t, got.IsPrivate)
	assert.False(t, got.IsShared)
	assert.Empty(t, got.ShareID)
	assert.Empty(t, got.SharePermissions)

	// The revoked link no longer resolves.
	_, err = repo.FindByShareID(ctx, "share-abc")
	assert.ErrorIs(t, err, ErrNoteNotFound)

	// And a private note cannot be shared.
	assert.ErrorIs(t, repo.SetShare(ctx, note.ID, "share-def", model.PermissionView), ErrNoteNotFound)
}

func TestFindByShareIDExcludesDeleted(t *testing.T) {
	repo := newTestNotesRepo(t)
	ctx := context.Background()

	note := newNote("owner")
	require.NoError(t, repo.CreateNote(ctx, note))
	require.NoError(t, repo.SetShare(ctx, note.ID, "share-xyz", model.PermissionView))

	got, err := repo.FindByShareID(ctx, "share-xyz")
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)

	require.NoError(t, repo.SoftDelete(ctx, note.ID))
	_, err = repo.FindByShareID(ctx, "share-xyz")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestRemoveUserFromAllCollaborations(t *testing.T) {
	repo := newTestNotesRepo(t)
	ctx := context.Background()

	first := newNote("owner-a")
	second := newNote("owner-b")
	require.NoError(t, repo.CreateNote(ctx, first))
	require.NoError(t, repo.CreateNote(ctx, second))

	collab := model.Collaborator{UserID: "banned-user", Permission: model.PermissionEdit}
	require.NoError(t, repo.AddCollaborator(ctx, first.ID, collab))
	require.NoError(t, repo.AddCollaborator(ctx, second.ID, collab))

	touched, err := repo.RemoveUserFromAllCollaborations(ctx, "banned-user")
	require.NoError(t, err)
	assert.Equal(t, int64(2), touched)

	_, err = repo.GetVisibleNote(ctx, first.ID, "banned-user")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}
