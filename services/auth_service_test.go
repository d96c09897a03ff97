package services

import (
	"testing"
	"time"

	"hotelease/models"
	"hotelease/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)

	user, token, err := svc.Register(RegisterInput{
		Email:     "Guest@Example.com",
		Password:  "swordfish99",
		FirstName: " Thandi ",
		LastName:  "Nkosi",
	})
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", user.Email)
	assert.Equal(t, "Thandi", user.FirstName)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "swordfish99", user.Password)
	assert.NotEmpty(t, token)

	claims, err := utils.ParseAccessToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)

	loggedIn, token, err := svc.Login("guest@example.com", "swordfish99")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)

	_, _, err := svc.Register(RegisterInput{Email: "guest@example.com", Password: "swordfish99"})
	require.NoError(t, err)

	// Case-insensitive: the same address with different casing is taken.
	_, _, err = svc.Register(RegisterInput{Email: "GUEST@example.com", Password: "other-password"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)

	_, _, err := svc.Register(RegisterInput{Email: "guest@example.com", Password: "swordfish99"})
	require.NoError(t, err)

	_, _, err = svc.Login("guest@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "swordfish99")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfilePartial(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)

	user, _, err := svc.Register(RegisterInput{
		Email: "guest@example.com", Password: "swordfish99",
		FirstName: "Thandi", Phone: "0821234567",
	})
	require.NoError(t, err)

	phone := "0839876543"
	_, err = svc.UpdateProfile(user.ID, ProfileUpdate{Phone: &phone})
	require.NoError(t, err)

	reloaded, err := svc.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "0839876543", reloaded.Phone)
	assert.Equal(t, "Thandi", reloaded.FirstName, "unset fields stay untouched")
}

func TestPasswordResetFlow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)

	_, _, err := svc.Register(RegisterInput{Email: "guest@example.com", Password: "swordfish99"})
	require.NoError(t, err)

	token, err := svc.ForgotPassword("guest@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(token, "new-password-1"))

	_, _, err = svc.Login("guest@example.com", "swordfish99")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("guest@example.com", "new-password-1")
	require.NoError(t, err)

	// Tokens are single use.
	assert.ErrorIs(t, svc.ResetPassword(token, "another-password"), ErrResetTokenInvalid)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)

	token, err := svc.ForgotPassword("nobody@example.com")
	require.NoError(t, err, "unknown addresses must not be distinguishable by an error")
	assert.Empty(t, token)
}

func TestExpiredResetTokenRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)

	user, _, err := svc.Register(RegisterInput{Email: "guest@example.com", Password: "swordfish99"})
	require.NoError(t, err)

	token, err := svc.ForgotPassword("guest@example.com")
	require.NoError(t, err)

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("reset_token_expires", expired).Error)

	assert.ErrorIs(t, svc.ResetPassword(token, "new-password-1"), ErrResetTokenInvalid)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.Password), []byte("swordfish99")),
		"an expired token must not change the password")
}
