package services

import (
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/badges"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/state"
	"github.com/golang-jwt/jwt/v5"
)

var ErrUserNotFound = errors.New("user not found")

// Profile is a user with the badges they have earned.
type Profile struct {
	models.User
	Badges []badges.Badge `json:"badges"`
}

// Session is returned by the mock login cycle.
type Session struct {
	Token     string  `json:"token"`
	ExpiresAt int64   `json:"expiresAt"`
	User      Profile `json:"user"`
}

type UserService struct {
	store *state.Store
	cfg   *config.Config
	now   func() time.Time
}

func NewUserService(store *state.Store, cfg *config.Config) *UserService {
	return &UserService{store: store, cfg: cfg, now: time.Now}
}

func (s *UserService) Roster() []models.User {
	return append([]models.User(nil), s.store.Snapshot().Users...)
}

func (s *UserService) Get(id string) (Profile, error) {
	u, ok := s.store.Snapshot().User(id)
	if !ok {
		return Profile{}, ErrUserNotFound
	}
	return profileOf(u), nil
}

// NextSession signs in the roster member after currentID (the first one when
// currentID is empty) and issues an access token for them.
func (s *UserService) NextSession(currentID string) (Session, error) {
	u, err := state.NextUser(s.store.Snapshot().Users, currentID)
	if err != nil {
		return Session{}, err
	}
	token, exp, err := s.generateAccessToken(u)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp.Unix(), User: profileOf(u)}, nil
}

func (s *UserService) generateAccessToken(u models.User) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.JWTAccessExpiry)
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	return signed, exp, err
}

func profileOf(u models.User) Profile {
	return Profile{User: u, Badges: badges.Earned(u)}
}
