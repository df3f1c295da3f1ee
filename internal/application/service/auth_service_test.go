package service

import (
	"context"
	"testing"
	"time"

	"github.com/stitchline/tailorflow-api/internal/domain/entity"
	"github.com/stitchline/tailorflow-api/pkg/apperror"
	"github.com/stitchline/tailorflow-api/pkg/utils"
)

func newAuthFixture(t *testing.T) (*memStore, *AuthService) {
	t.Helper()
	store := newMemStore()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return store, NewAuthService(&memUserRepo{store: store}, jwtManager)
}

func TestRegisterAndLogin(t *testing.T) {
	_, svc := newAuthFixture(t)

	user, err := svc.Register(context.Background(), &RegisterInput{
		FirstName: "Amina",
		LastName:  "Odhiambo",
		Email:     "amina@example.com",
		Password:  "sturdy-needle-9",
		Role:      entity.RoleTailor,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Password == "sturdy-needle-9" {
		t.Error("password stored in plaintext")
	}

	logged, tokens, err := svc.Login(context.Background(), "amina@example.com", "sturdy-needle-9")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("logged in user = %v, want %v", logged.ID, user.ID)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}

	if _, _, err := svc.Login(context.Background(), "amina@example.com", "wrong"); !apperror.IsKind(err, apperror.KindUnauthorized) {
		t.Errorf("wrong password: err = %v, want unauthorized", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever"); !apperror.IsKind(err, apperror.KindUnauthorized) {
		t.Errorf("unknown email: err = %v, want unauthorized", err)
	}
}

func TestRegisterRejections(t *testing.T) {
	_, svc := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), &RegisterInput{
		FirstName: "Amina",
		Email:     "amina@example.com",
		Password:  "short",
	}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("short password: err = %v, want validation error", err)
	}

	if _, err := svc.Register(context.Background(), &RegisterInput{
		FirstName: "Amina",
		Email:     "amina@example.com",
		Password:  "sturdy-needle-9",
		Role:      "owner",
	}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("unknown role: err = %v, want validation error", err)
	}

	if _, err := svc.Register(context.Background(), &RegisterInput{
		FirstName: "Amina",
		Email:     "amina@example.com",
		Password:  "sturdy-needle-9",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), &RegisterInput{
		FirstName: "Another",
		Email:     "amina@example.com",
		Password:  "sturdy-needle-9",
	}); !apperror.IsKind(err, apperror.KindConflict) {
		t.Errorf("duplicate email: err = %v, want conflict error", err)
	}
}
