package usecase

import (
	"context"
	"testing"
	"time"

	"main/model"
	"main/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRemainingDays(t *testing.T) {
	deletedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"immediately after deletion", deletedAt, 30},
		{"same day", deletedAt.Add(6 * time.Hour), 30},
		{"one day in", deletedAt.AddDate(0, 0, 1), 29},
		{"day before expiry", deletedAt.AddDate(0, 0, 29), 1},
		{"exactly at expiry", deletedAt.AddDate(0, 0, 30), 0},
		{"long past expiry", deletedAt.AddDate(0, 0, 90), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRemainingDays(deletedAt, tt.now, DefaultRetentionDays)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeRemainingDaysNeverNegative(t *testing.T) {
	deletedAt := time.Now().AddDate(-1, 0, 0)
	got := ComputeRemainingDays(deletedAt, time.Now(), DefaultRetentionDays)
	assert.Equal(t, 0, got)
}

func TestComputeRemainingDaysMonotonic(t *testing.T) {
	deletedAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	prev := ComputeRemainingDays(deletedAt, deletedAt, DefaultRetentionDays)
	for hours := 1; hours <= 24*40; hours += 7 {
		now := deletedAt.Add(time.Duration(hours) * time.Hour)
		got := ComputeRemainingDays(deletedAt, now, DefaultRetentionDays)
		assert.LessOrEqual(t, got, prev, "remaining days must not increase as time passes")
		assert.GreaterOrEqual(t, got, 0)
		prev = got
	}
}

func TestComputeRemainingDaysCustomWindow(t *testing.T) {
	deletedAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 7, ComputeRemainingDays(deletedAt, deletedAt, 7))
	assert.Equal(t, 1, ComputeRemainingDays(deletedAt, deletedAt.AddDate(0, 0, 6), 7))
	assert.Equal(t, 0, ComputeRemainingDays(deletedAt, deletedAt.AddDate(0, 0, 7), 7))
}

type recordingInvalidator struct {
	shareIDs []string
}

func (ri *recordingInvalidator) Invalidate(_ context.Context, shareID string) {
	ri.shareIDs = append(ri.shareIDs, shareID)
}

func TestDeleteTransitionsDropShareLinkCache(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	repo := &repository.NotesRepo{MongoCollection: testCollection(t, db, "notes")}
	cache := &recordingInvalidator{}
	svc := &RetentionService{NotesRepo: repo, ShareCache: cache}

	shared := &model.Note{ID: uuid.New().String(), UserID: "owner", Title: "a", Content: "b",
		IsShared: true, ShareID: "share-soft"}
	unshared := &model.Note{ID: uuid.New().String(), UserID: "owner", Title: "a", Content: "b"}
	require.NoError(t, repo.CreateNote(ctx, shared))
	require.NoError(t, repo.CreateNote(ctx, unshared))

	// Binning a shared note kills its anonymous link right away, not after
	// the cache TTL runs out.
	require.NoError(t, svc.SoftDelete(ctx, shared.ID, "owner"))
	assert.Equal(t, []string{"share-soft"}, cache.shareIDs)

	// Notes without a link never touch the cache.
	require.NoError(t, svc.SoftDelete(ctx, unshared.ID, "owner"))
	assert.Equal(t, []string{"share-soft"}, cache.shareIDs)

	hard := &model.Note{ID: uuid.New().String(), UserID: "owner", Title: "a", Content: "b",
		IsShared: true, ShareID: "share-hard"}
	require.NoError(t, repo.CreateNote(ctx, hard))
	require.NoError(t, svc.PermanentDelete(ctx, hard.ID, "owner"))
	assert.Contains(t, cache.shareIDs, "share-hard")

	binned := &model.Note{ID: uuid.New().String(), UserID: "owner", Title: "a", Content: "b",
		IsShared: true, ShareID: "share-bin"}
	require.NoError(t, repo.CreateNote(ctx, binned))
	require.NoError(t, repo.SoftDelete(ctx, binned.ID))

	cache.shareIDs = nil
	deleted, err := svc.EmptyBin(ctx, "owner")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(1))
	assert.Contains(t, cache.shareIDs, "share-bin")
}
