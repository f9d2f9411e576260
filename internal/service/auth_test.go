package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdelelgendy/mealmind/backend/internal/service"
	"github.com/abdelelgendy/mealmind/backend/internal/testhelpers"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

func registerReq() *types.RegisterRequest {
	return &types.RegisterRequest{
		Email:       "test@example.com",
		Password:    "password123",
		Username:    "tester",
		Diet:        "vegan",
		CalorieGoal: 2000,
		Allergies:   "nuts",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	token, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "tester", claims.Username)

	loginToken, err := svc.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	loginClaims, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, loginClaims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq())
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestRegisterRejectsNegativeCalorieGoal(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret")

	req := registerReq()
	req.CalorieGoal = -1
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestRegisterCreatesProfile(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	token, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("user_profiles").
		Where("user_id = ? AND diet = ?", claims.UserID, "vegan").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "test@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateTokenRejectsForgery(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret")
	other := service.NewAuthService(db, "other-secret")

	token, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}
