package service

import (
	"context"

	errors "github.com/Laisky/errors/v2"
	"golang.org/x/crypto/bcrypt"

	"fileserver/internal/web/files/dao"
	"fileserver/internal/web/files/model"
)

// Register creates a new user with a bcrypt credential. A taken username
// is the one uniqueness conflict that surfaces to the caller.
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, NewError(ErrCodeConflict, "username and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := &model.User{Username: username, Password: string(hashed)}
	if err = s.dao.CreateUser(ctx, user); err != nil {
		if dao.IsDuplicated(err) {
			return nil, NewError(ErrCodeConflict, "username already taken")
		}
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// Authenticate verifies the credential and returns the user.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.dao.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if user == nil {
		return nil, NewError(ErrCodeUnauthenticated, "not authenticated")
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, NewError(ErrCodeUnauthenticated, "not authenticated")
	}

	return user, nil
}

// UserByName loads the user a verified token refers to.
func (s *Service) UserByName(ctx context.Context, username string) (*model.User, error) {
	user, err := s.dao.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if user == nil {
		return nil, NewError(ErrCodeUnauthenticated, "not authenticated")
	}

	return user, nil
}
