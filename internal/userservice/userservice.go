package userservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/haguru/sakura/internal/apperrors"
	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/internal/models"
	"github.com/haguru/sakura/internal/validation"
	"github.com/haguru/sakura/pkg/clock"
	"github.com/haguru/sakura/pkg/helper"

	"golang.org/x/crypto/bcrypt"
)

// UserService implements interfaces.AccountService over a whole-collection store.
// Register and UpdateUsername load, modify and save the collection under writeMu
// so concurrent requests in this process cannot lose each other's writes.
// Separate processes sharing one store are not coordinated.
type UserService struct {
	UserRepo interfaces.UserRepository
	Hasher   interfaces.PasswordHasher
	Clock    clock.Clock
	Logger   interfaces.Logger

	writeMu sync.Mutex
}

// NewUserService creates a new UserService instance.
func NewUserService(repo interfaces.UserRepository, hasher interfaces.PasswordHasher, clk clock.Clock, logger interfaces.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		Hasher:   hasher,
		Clock:    clk,
		Logger:   logger,
	}
}

// Register validates the fields, rejects a taken email, and appends a new record.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.PublicUser, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "email", email)
	defer s.Logger.Debug("Exiting function", "func", funcName, "email", email)

	switch {
	case username == "" || email == "" || password == "":
		return nil, apperrors.Validation(MsgAllFieldsRequired)
	case !validation.IsValidEmail(email):
		return nil, apperrors.Validation(MsgInvalidEmail)
	case !validation.IsValidPassword(password):
		return nil, apperrors.Validation(MsgPasswordTooShort)
	case !validation.IsValidUsername(username):
		return nil, apperrors.Validation(MsgInvalidUsername)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	users, err := s.UserRepo.Load(ctx)
	if err != nil {
		s.Logger.Error(ErrFailedToLoadUsers, "func", funcName, "error", err)
		return nil, apperrors.Storage(MsgRegistrationError, err)
	}

	for _, u := range users {
		if u.Email == email {
			s.Logger.Info("Registration rejected, email taken", "func", funcName, "email", email)
			return nil, apperrors.Conflict(MsgEmailTaken)
		}
	}

	hash, err := s.Hasher.Hash(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperrors.Validation(MsgPasswordTooLong)
	}
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "email", email, "error", err)
		return nil, apperrors.Internal(MsgRegistrationError, fmt.Errorf("%s: %w", ErrFailedToHashPassword, err))
	}

	now := s.Clock.Now().UTC().Truncate(time.Millisecond)
	user := models.NewUser(nextID(users, now), username, email, hash, now)

	if err := s.UserRepo.Save(ctx, append(users, *user)); err != nil {
		s.Logger.Error(ErrFailedToSaveUsers, "func", funcName, "email", email, "error", err)
		return nil, apperrors.Storage(MsgFailedToSaveUser, err)
	}

	s.Logger.Info("User registered successfully", "func", funcName, "email", email, "ID", user.ID)
	public := user.Public()
	return &public, nil
}

// Authenticate checks an email and password pair. An unknown email and a
// wrong password produce the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.PublicUser, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "email", email)
	defer s.Logger.Debug("Exiting function", "func", funcName, "email", email)

	if email == "" || password == "" {
		return nil, apperrors.Validation(MsgCredentialsRequired)
	}

	users, err := s.UserRepo.Load(ctx)
	if err != nil {
		s.Logger.Error(ErrFailedToLoadUsers, "func", funcName, "error", err)
		return nil, apperrors.Storage(MsgLoginError, err)
	}

	for _, u := range users {
		if u.Email != email {
			continue
		}
		if !s.Hasher.Verify(password, u.PasswordHash) {
			break
		}
		s.Logger.Info("User authenticated successfully", "func", funcName, "email", email)
		public := u.Public()
		return &public, nil
	}

	s.Logger.Info("Authentication failed", "func", funcName, "email", email)
	return nil, apperrors.Auth(MsgInvalidCredentials)
}

// ListProfiles returns the public view of every record in insertion order.
func (s *UserService) ListProfiles(ctx context.Context) ([]models.PublicUser, error) {
	funcName := helper.GetFuncName()

	users, err := s.UserRepo.Load(ctx)
	if err != nil {
		s.Logger.Error(ErrFailedToLoadUsers, "func", funcName, "error", err)
		return nil, apperrors.Storage(MsgFailedToRetrieveProfiles, err)
	}

	s.Logger.Debug("Listed profiles", "func", funcName, "count", len(users))
	return models.PublicUsers(users), nil
}

// UpdateUsername changes the username of one record; nothing else is touched.
func (s *UserService) UpdateUsername(ctx context.Context, userID, newUsername string) (*models.PublicUser, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "ID", userID)
	defer s.Logger.Debug("Exiting function", "func", funcName, "ID", userID)

	if userID == "" {
		return nil, apperrors.Validation(MsgUserIDRequired)
	}
	if !validation.IsValidUsername(newUsername) {
		return nil, apperrors.Validation(MsgInvalidUsername)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	users, err := s.UserRepo.Load(ctx)
	if err != nil {
		s.Logger.Error(ErrFailedToLoadUsers, "func", funcName, "error", err)
		return nil, apperrors.Storage(MsgUpdateError, err)
	}

	idx := -1
	for i := range users {
		if users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NotFound(MsgUserNotFound)
	}

	users[idx].Username = newUsername
	if err := s.UserRepo.Save(ctx, users); err != nil {
		s.Logger.Error(ErrFailedToSaveUsers, "func", funcName, "ID", userID, "error", err)
		return nil, apperrors.Storage(MsgFailedToUpdateUser, err)
	}

	s.Logger.Info("Username updated successfully", "func", funcName, "ID", userID)
	public := users[idx].Public()
	return &public, nil
}

// nextID derives the id from the creation time in milliseconds, moving
// forward past ids already taken by registrations in the same millisecond.
func nextID(users []models.User, now time.Time) string {
	taken := make(map[string]struct{}, len(users))
	for _, u := range users {
		taken[u.ID] = struct{}{}
	}
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if _, ok := taken[id]; !ok {
			return id
		}
		ms++
	}
}
