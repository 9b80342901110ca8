// Package auth provides username/password registration and login on top of
// the world's credential storage. Passwords are stored as bcrypt hashes.
package auth

import (
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/mudstone/typequest/internal/world"
)

// Credentials is the slice of the grid manager the registry needs.
type Credentials interface {
	CreateUser(username, password string) error
	GetUser(username string) (world.User, bool)
}

type UserRegistry struct {
	creds Credentials
}

func NewUserRegistry(creds Credentials) *UserRegistry {
	return &UserRegistry{creds: creds}
}

// Exists reports whether an account with the given username is registered.
func (r *UserRegistry) Exists(username string) bool {
	_, ok := r.creds.GetUser(username)
	return ok
}

// Login reports whether the username exists and the password matches.
func (r *UserRegistry) Login(username, password string) bool {
	user, ok := r.creds.GetUser(username)
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// Register creates a new user. Returns false when the username is taken or
// the password cannot be hashed.
func (r *UserRegistry) Register(username, password string) bool {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("hashing password", "error", err)
		return false
	}
	err = r.creds.CreateUser(username, string(hash))
	if err != nil {
		if !errors.Is(err, world.ErrUserExists) {
			slog.Error("creating user", "username", username, "error", err)
		}
		return false
	}
	return true
}
