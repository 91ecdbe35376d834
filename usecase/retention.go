package usecase

import (
	"context"
	"fmt"
	"time"

	"main/model"
	"main/repository"
	"main/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultRetentionDays is how long a soft-deleted note stays restorable.
const DefaultRetentionDays = 30

// ComputeRemainingDays returns how many whole days remain before a note
// soft-deleted at deletedAt becomes purge-eligible. Floors at 0 and is
// monotonically non-increasing as now advances.
func ComputeRemainingDays(deletedAt, now time.Time, retentionDays int) int {
	elapsed := int(now.Sub(deletedAt).Hours() / 24)
	remaining := retentionDays - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ShareLinkInvalidator drops a cached share-link entry once its note stops
// being publicly readable. Satisfied by services.ShareCache.
type ShareLinkInvalidator interface {
	Invalidate(ctx context.Context, shareID string)
}

// RetentionService owns the note lifecycle between active, deleted and purged,
// including the scheduled sweep that makes purging a server guarantee instead
// of a client side effect.
type RetentionService struct {
	NotesRepo        *repository.NotesRepo
	GuestNotesRepo   *repository.GuestNotesRepo
	PendingUsersRepo *repository.PendingUsersRepo
	ShareCache       ShareLinkInvalidator
	RetentionDays    int
	GuestTTLDays     int
	Logger           *zap.Logger

	cron *cron.Cron
}

func (svc *RetentionService) retentionDays() int {
	if svc.RetentionDays <= 0 {
		return DefaultRetentionDays
	}
	return svc.RetentionDays
}

func (svc *RetentionService) guestTTLDays() int {
	if svc.GuestTTLDays <= 0 {
		return DefaultRetentionDays
	}
	return svc.GuestTTLDays
}

// SoftDelete moves a note into the recycle bin. Owner or edit-collaborator.
// A note in the bin is no longer anonymously readable, so its share-link
// cache entry goes too.
func (svc *RetentionService) SoftDelete(ctx context.Context, noteID, callerID string) error {
	note, err := svc.editableNote(ctx, noteID, callerID)
	if err != nil {
		return err
	}
	if note.IsDeleted {
		return fmt.Errorf("%w: note is already in the bin", ErrConflict)
	}
	if err := svc.NotesRepo.SoftDelete(ctx, noteID); err != nil {
		return err
	}
	svc.invalidateShareLink(ctx, note.ShareID)
	return nil
}

// Restore brings a soft-deleted note back before the window closes.
func (svc *RetentionService) Restore(ctx context.Context, noteID, callerID string) error {
	note, err := svc.editableNote(ctx, noteID, callerID)
	if err != nil {
		return err
	}
	if !note.IsDeleted {
		return fmt.Errorf("%w: note is not in the bin", ErrConflict)
	}
	return svc.NotesRepo.Restore(ctx, noteID)
}

// PermanentDelete hard-removes one note. Owner only, terminal.
func (svc *RetentionService) PermanentDelete(ctx context.Context, noteID, callerID string) error {
	note, err := svc.NotesRepo.GetOwnedNote(ctx, noteID, callerID)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return ErrNotFound
		}
		return err
	}

	if err := svc.NotesRepo.PermanentDelete(ctx, noteID, callerID); err != nil {
		if err == repository.ErrNoteNotFound {
			return ErrNotFound
		}
		return err
	}

	svc.invalidateShareLink(ctx, note.ShareID)
	return nil
}

// EmptyBin hard-removes every soft-deleted note the caller owns.
func (svc *RetentionService) EmptyBin(ctx context.Context, callerID string) (int64, error) {
	notes, err := svc.NotesRepo.ListBin(ctx, callerID)
	if err != nil {
		return 0, err
	}

	deleted, err := svc.NotesRepo.EmptyBin(ctx, callerID)
	if err != nil {
		return 0, err
	}

	for _, note := range notes {
		svc.invalidateShareLink(ctx, note.ShareID)
	}
	return deleted, nil
}

func (svc *RetentionService) invalidateShareLink(ctx context.Context, shareID string) {
	if svc.ShareCache != nil && shareID != "" {
		svc.ShareCache.Invalidate(ctx, shareID)
	}
}

// BinEntry pairs a deleted note with its countdown.
type BinEntry struct {
	Note          *model.Note `json:"note"`
	RemainingDays int         `json:"remaining_days"`
}

// ListBin returns the caller's deleted notes annotated with the days left
// before each one is purge-eligible.
func (svc *RetentionService) ListBin(ctx context.Context, callerID string) ([]BinEntry, error) {
	notes, err := svc.NotesRepo.ListBin(ctx, callerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := make([]BinEntry, 0, len(notes))
	for _, note := range redactPrivateContent(notes) {
		remaining := 0
		if note.DeletedAt != nil {
			remaining = ComputeRemainingDays(*note.DeletedAt, now, svc.retentionDays())
		}
		entries = append(entries, BinEntry{Note: note, RemainingDays: remaining})
	}
	return entries, nil
}

// Sweep purges every note whose retention window has elapsed, plus expired
// guest notes and stale unverified registrations. Idempotent; safe to run on
// any schedule.
func (svc *RetentionService) Sweep(ctx context.Context, now time.Time) error {
	utils.RetentionSweepRuns.Inc()

	cutoff := now.AddDate(0, 0, -svc.retentionDays())
	purged, err := svc.NotesRepo.PurgeExpired(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("retention sweep: %w", err)
	}
	utils.RetentionPurgedNotes.Add(float64(purged))

	var guests, pendings int64
	if svc.GuestNotesRepo != nil {
		guestCutoff := now.AddDate(0, 0, -svc.guestTTLDays())
		guests, err = svc.GuestNotesRepo.PurgeOlderThan(ctx, guestCutoff)
		if err != nil {
			return fmt.Errorf("guest note sweep: %w", err)
		}
	}
	if svc.PendingUsersRepo != nil {
		pendings, err = svc.PendingUsersRepo.PurgeExpired(ctx, now)
		if err != nil {
			return fmt.Errorf("pending user sweep: %w", err)
		}
	}

	if svc.Logger != nil {
		svc.Logger.Info("retention sweep finished",
			zap.Int64("purged_notes", purged),
			zap.Int64("purged_guest_notes", guests),
			zap.Int64("purged_pending_users", pendings),
			zap.Time("cutoff", cutoff),
		)
	}
	return nil
}

// StartSweeper schedules the retention sweep inside the service process so
// purging does not depend on any client being connected. Runs hourly unless a
// cron expression overrides it.
func (svc *RetentionService) StartSweeper(spec string) error {
	if spec == "" {
		spec = "@hourly"
	}

	svc.cron = cron.New()
	_, err := svc.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := svc.Sweep(ctx, time.Now()); err != nil {
			utils.TrackError("retention", "sweep_failed")
			if svc.Logger != nil {
				svc.Logger.Error("retention sweep failed", zap.Error(err))
			}
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention sweep: %w", err)
	}

	svc.cron.Start()
	return nil
}

// StopSweeper stops the schedule and waits for a running sweep to finish.
func (svc *RetentionService) StopSweeper() {
	if svc.cron != nil {
		<-svc.cron.Stop().Done()
	}
}

func (svc *RetentionService) editableNote(ctx context.Context, noteID, callerID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetVisibleNote(ctx, noteID, callerID)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch ResolvePermission(note, callerID) {
	case PermissionOwner, model.PermissionEdit:
		return note, nil
	default:
		return nil, fmt.Errorf("%w: edit permission required", ErrForbidden)
	}
}
