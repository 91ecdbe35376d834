package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCategory is seeded onto every account at creation.
const DefaultCategory = "General"

const verificationTokenTTL = 24 * time.Hour

type UserService struct {
	UsersRepo        *repository.UserRepo
	PendingUsersRepo *repository.PendingUsersRepo
	SessionRepo      *repository.SessionRepo
	Collaboration    *CollaborationService
	Mailer           *services.Mailer
	Logger           *zap.Logger
}

// Register stores a pending registration and emails its verification token.
// The account itself is not created until the token comes back.
func (svc *UserService) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if username == "" || email == "" {
		return fmt.Errorf("%w: username and email are required", ErrValidation)
	}
	if !utils.ValidatePassword(password) {
		return fmt.Errorf("%w: password must be at least 6 characters with a number and a special character", ErrValidation)
	}

	if existing, err := svc.UsersRepo.FindUserByEmail(ctx, email); err != nil {
		return err
	} else if existing != nil {
		return fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if existing, err := svc.UsersRepo.FindUserByUsername(ctx, username); err != nil {
		return err
	} else if existing != nil {
		return fmt.Errorf("%w: username already exists", ErrConflict)
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	pending := &model.PendingUser{
		Email:     email,
		Username:  username,
		Password:  hashed,
		Token:     uuid.New().String(),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(verificationTokenTTL),
	}
	if err := svc.PendingUsersRepo.CreatePendingUser(ctx, pending); err != nil {
		return err
	}

	if svc.Mailer != nil {
		if err := svc.Mailer.SendVerification(email, pending.Token); err != nil {
			// The pending record stands; the user can re-register to get a
			// fresh token if the mail never arrives.
			utils.TrackError("mailer", "verification_send_failed")
			if svc.Logger != nil {
				svc.Logger.Error("failed to send verification mail",
					zap.String("email", email), zap.Error(err))
			}
		}
	} else if svc.Logger != nil {
		// No mailer wired: surface the token in the log so the account can
		// still be verified.
		svc.Logger.Info("mailer not configured, verification token logged",
			zap.String("email", email),
			zap.String("token", pending.Token))
	}
	return nil
}

// Verify promotes a pending registration into a real account and seeds the
// default category.
func (svc *UserService) Verify(ctx context.Context, token string) (*model.User, error) {
	pending, err := svc.PendingUsersRepo.FindByToken(ctx, token)
	if err != nil {
		if err == repository.ErrPendingUserNotFound {
			return nil, fmt.Errorf("%w: unknown verification token", ErrNotFound)
		}
		return nil, err
	}
	if time.Now().After(pending.ExpiresAt) {
		return nil, fmt.Errorf("%w: verification token expired", ErrValidation)
	}

	user := &model.User{
		UserID:     utils.GenerateUserID(),
		Username:   pending.Username,
		Email:      pending.Email,
		Password:   pending.Password,
		Categories: []string{DefaultCategory},
		CreatedAt:  time.Now(),
	}
	if err := svc.UsersRepo.AddUser(ctx, user); err != nil {
		return nil, err
	}

	if err := svc.PendingUsersRepo.DeleteByEmail(ctx, pending.Email); err != nil && svc.Logger != nil {
		svc.Logger.Warn("failed to clean up pending registration",
			zap.String("email", pending.Email), zap.Error(err))
	}
	return user, nil
}

// Authenticate checks credentials and returns the account. Banned accounts
// cannot log in.
func (svc *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := svc.UsersRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrNotFound)
	}
	if user.IsBanned {
		return nil, fmt.Errorf("%w: account is banned", ErrForbidden)
	}

	ok, err := services.VerifyPassword(user.Password, password)
	if err != nil || !ok {
		return nil, fmt.Errorf("%w: invalid credentials", ErrNotFound)
	}

	if err := svc.UsersRepo.RecordLogin(ctx, user.UserID); err != nil && svc.Logger != nil {
		svc.Logger.Warn("failed to record login", zap.String("user_id", user.UserID), zap.Error(err))
	}
	return user, nil
}

// BanUser flips the ban flag and cascades: the banned user is pulled from
// every collaborator list and all their sessions end. The writes are
// independent, not transactional.
func (svc *UserService) BanUser(ctx context.Context, targetID string) error {
	if err := svc.UsersRepo.SetBanned(ctx, targetID, true); err != nil {
		if err == repository.ErrUserNotFound {
			return ErrNotFound
		}
		return err
	}

	touched, err := svc.Collaboration.RemoveUserFromAllCollaborations(ctx, targetID)
	if err != nil {
		return fmt.Errorf("ban cascade: %w", err)
	}

	if svc.SessionRepo != nil {
		if _, err := svc.SessionRepo.EndAllSessions(ctx, targetID); err != nil && svc.Logger != nil {
			svc.Logger.Warn("failed to end sessions on ban",
				zap.String("user_id", targetID), zap.Error(err))
		}
	}

	if svc.Logger != nil {
		svc.Logger.Info("user banned",
			zap.String("user_id", targetID),
			zap.Int64("collaborations_removed", touched))
	}
	return nil
}

func (svc *UserService) AddCategory(ctx context.Context, userID, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if len(category) > 50 {
		return fmt.Errorf("%w: category name too long", ErrValidation)
	}
	err := svc.UsersRepo.AddCategory(ctx, userID, category)
	if err == repository.ErrUserNotFound {
		return ErrNotFound
	}
	return err
}

func (svc *UserService) RemoveCategory(ctx context.Context, userID, category string) error {
	if category == DefaultCategory {
		return fmt.Errorf("%w: the default category cannot be removed", ErrValidation)
	}
	err := svc.UsersRepo.RemoveCategory(ctx, userID, category)
	if err == repository.ErrUserNotFound {
		return ErrNotFound
	}
	return err
}

func (svc *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := svc.UsersRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
