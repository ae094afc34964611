package util

import (
	"elearn_backend/internal/model"
	"testing"
	"time"
)

func TestJWT_RoundTrip(t *testing.T) {
	user := &model.User{Email: "a@b.c", Role: model.Student}
	user.ID = 42

	token, err := GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if claims.UserID != 42 || claims.Role != model.Student || claims.Email != "a@b.c" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWT_Rejects(t *testing.T) {
	user := &model.User{Role: model.Teacher}
	user.ID = 1

	expired, _ := GenerateJWT(user, "secret", -time.Minute)
	valid, _ := GenerateJWT(user, "secret", time.Hour)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"expired", expired, "secret"},
		{"wrong-secret", valid, "other"},
		{"garbage", "not-a-token", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJWT(tt.token, tt.secret); err == nil {
				t.Error("ParseJWT() expected error")
			}
		})
	}
}
