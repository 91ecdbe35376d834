package usecase

import (
	"context"
	"os"
	"testing"
	"time"

	"main/model"
	"main/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newTestDB connects to the local MongoDB for service-level tests. Skips when
// no server is reachable.
func newTestDB(t *testing.T) *mongo.Database {
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

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	})
	return client.Database("notesbin_test")
}

// testCollection hands out a throwaway collection dropped at test end.
func testCollection(t *testing.T, db *mongo.Database, prefix string) *mongo.Collection {
	t.Helper()
	coll := db.Collection(prefix + "_" + uuid.New().String()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = coll.Drop(ctx)
	})
	return coll
}

func TestResolvePermission(t *testing.T) {
	note := &model.Note{
		ID:     "note-1",
		UserID: "owner-id",
		Collaborators: []model.Collaborator{
			{UserID: "editor-id", Permission: model.PermissionEdit},
			{UserID: "viewer-id", Permission: model.PermissionView},
		},
	}

	tests := []struct {
		name     string
		callerID string
		want     string
	}{
		{"owner", "owner-id", PermissionOwner},
		{"edit collaborator", "editor-id", model.PermissionEdit},
		{"view collaborator", "viewer-id", model.PermissionView},
		{"stranger", "someone-else", ""},
		{"anonymous", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePermission(note, tt.callerID))
		})
	}
}

func TestResolvePermissionOwnerBeatsCollaboratorEntry(t *testing.T) {
	// Owner listed as a collaborator too: owner wins.
	note := &model.Note{
		UserID: "owner-id",
		Collaborators: []model.Collaborator{
			{UserID: "owner-id", Permission: model.PermissionView},
		},
	}
	assert.Equal(t, PermissionOwner, ResolvePermission(note, "owner-id"))
}

func TestResolvePermissionNoCollaborators(t *testing.T) {
	note := &model.Note{UserID: "owner-id"}
	assert.Equal(t, "", ResolvePermission(note, "someone-else"))
}

func TestAddCollaboratorValidationBeforeStore(t *testing.T) {
	// No repos wired: reaching the store would panic, so a clean validation
	// error proves nothing was read or written.
	svc := &CollaborationService{}
	ctx := context.Background()

	_, err := svc.AddCollaborator(ctx, "note-1", "owner", "friend@example.com", "admin")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddCollaborator(ctx, "note-1", "owner", "", model.PermissionView)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddCollaborator(ctx, "note-1", "owner", "friend@example.com", "")
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.RemoveCollaborator(ctx, "note-1", "owner", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCollaboratorRules(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	notesRepo := &repository.NotesRepo{MongoCollection: testCollection(t, db, "notes")}
	usersRepo := &repository.UserRepo{MongoCollection: testCollection(t, db, "users")}
	svc := &CollaborationService{NotesRepo: notesRepo, UsersRepo: usersRepo}

	seed := []*model.User{
		{UserID: "owner", Username: "owner", Email: "owner@example.com", Password: "x"},
		{UserID: "target", Username: "target", Email: "target@example.com", Password: "x"},
		{UserID: "banned", Username: "banned", Email: "banned@example.com", Password: "x", IsBanned: true},
	}
	for _, u := range seed {
		require.NoError(t, usersRepo.AddUser(ctx, u))
	}

	note := &model.Note{ID: uuid.New().String(), UserID: "owner", Title: "shared work", Content: "body"}
	require.NoError(t, notesRepo.CreateNote(ctx, note))

	// A caller with no visibility gets not-found, never forbidden.
	_, err := svc.AddCollaborator(ctx, note.ID, "target", "banned@example.com", model.PermissionView)
	assert.ErrorIs(t, err, ErrNotFound)

	collab, err := svc.AddCollaborator(ctx, note.ID, "owner", "Target@Example.com", model.PermissionView)
	require.NoError(t, err)
	assert.Equal(t, "target", collab.UserID)
	assert.Equal(t, model.PermissionView, collab.Permission)

	// Second add of the same account is a conflict and leaves the list alone.
	_, err = svc.AddCollaborator(ctx, note.ID, "owner", "target@example.com", model.PermissionEdit)
	assert.ErrorIs(t, err, ErrConflict)
	got, err := notesRepo.GetOwnedNote(ctx, note.ID, "owner")
	require.NoError(t, err)
	assert.Len(t, got.Collaborators, 1)

	_, err = svc.AddCollaborator(ctx, note.ID, "owner", "owner@example.com", model.PermissionView)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.AddCollaborator(ctx, note.ID, "owner", "banned@example.com", model.PermissionView)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AddCollaborator(ctx, note.ID, "owner", "nobody@example.com", model.PermissionView)
	assert.ErrorIs(t, err, ErrNotFound)

	// A view collaborator can see the note but cannot manage the list.
	_, err = svc.AddCollaborator(ctx, note.ID, "target", "banned@example.com", model.PermissionView)
	assert.ErrorIs(t, err, ErrForbidden)
	err = svc.RemoveCollaborator(ctx, note.ID, "target", "target@example.com")
	assert.ErrorIs(t, err, ErrForbidden)

	// Removing someone who is not on the note fails validation.
	err = svc.RemoveCollaborator(ctx, note.ID, "owner", "nobody@example.com")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.RemoveCollaborator(ctx, note.ID, "owner", "target@example.com"))
	got, err = notesRepo.GetOwnedNote(ctx, note.ID, "owner")
	require.NoError(t, err)
	assert.Empty(t, got.Collaborators)
}
