package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/badges"
	"github.com/golang-jwt/jwt/v5"
)

func TestUserService_NextSessionCycles(t *testing.T) {
	h := newHarness()

	s, err := h.users.NextSession("")
	if err != nil {
		t.Fatalf("NextSession: %v", err)
	}
	if s.User.ID != "user-1" {
		t.Errorf("first login = %s, want user-1", s.User.ID)
	}

	tok, err := jwt.Parse(s.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["sub"] != "user-1" || claims["username"] != "Alex" {
		t.Errorf("claims = %v", claims)
	}

	s, _ = h.users.NextSession("user-1")
	if s.User.ID != "user-2" {
		t.Errorf("second login = %s, want user-2", s.User.ID)
	}
	s, _ = h.users.NextSession("user-2")
	if s.User.ID != "user-1" {
		t.Errorf("wrap-around login = %s, want user-1", s.User.ID)
	}
}

func TestUserService_GetIncludesBadges(t *testing.T) {
	h := newHarness()

	p, err := h.users.Get("user-2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	ids := map[badges.ID]bool{}
	for _, b := range p.Badges {
		ids[b.ID] = true
	}
	if !ids[badges.ScamSpotter] || !ids[badges.VerifiedContributor] || !ids[badges.CommunityHelper] {
		t.Errorf("badges = %+v", p.Badges)
	}

	alex, _ := h.users.Get("user-1")
	if len(alex.Badges) != 0 {
		t.Errorf("Alex should have no badges, got %+v", alex.Badges)
	}

	if _, err := h.users.Get("ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
