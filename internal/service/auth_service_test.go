package service

import (
	"elearn_backend/internal/config"
	"elearn_backend/internal/model"
	"elearn_backend/internal/util"
	"errors"
	"testing"
	"time"
)

func newAuthService() (*AuthService, *fakeUsers) {
	users := &fakeUsers{users: map[uint]*model.User{}}
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}
	return NewAuthService(users, cfg), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users := newAuthService()

	user, err := svc.Register(RegisterRequest{
		Name:            "Ada",
		Email:           "ada@example.com",
		Password:        "hunter22",
		LearningProfile: model.LearningProfile{LearningStyle: "visual"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if user.Role != model.Student {
		t.Errorf("role = %q, want student", user.Role)
	}
	if users.users[user.ID].Password == "hunter22" {
		t.Error("password stored in clear text")
	}

	if _, err := svc.Register(RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "other1"}); !errors.Is(err, util.ErrEmailRegistered) {
		t.Errorf("duplicate err = %v", err)
	}

	resp, err := svc.Login(LoginRequest{Email: "ada@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatal(err)
	}
	claims, err := util.ParseJWT(resp.Token, "test-secret")
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != user.ID || claims.Role != model.Student {
		t.Errorf("claims = %+v", claims)
	}

	for _, req := range []LoginRequest{
		{Email: "ada@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "hunter22"},
	} {
		if _, err := svc.Login(req); !errors.Is(err, util.ErrInvalidCredentials) {
			t.Errorf("Login(%s) err = %v", req.Email, err)
		}
	}
}

func TestUpdateLearningProfile(t *testing.T) {
	svc, _ := newAuthService()
	user, err := svc.Register(RegisterRequest{Name: "Lin", Email: "lin@example.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateLearningProfile(user.ID, model.LearningProfile{FavoriteProgrammingTopic: "data"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.FavoriteProgrammingTopic != "data" {
		t.Errorf("topic = %q", updated.FavoriteProgrammingTopic)
	}
	if _, err := svc.UpdateLearningProfile(999, model.LearningProfile{}); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("err = %v", err)
	}
}
