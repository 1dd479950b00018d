package services

import (
	"testing"

	"cleanstride_backend/internal/models"
	"cleanstride_backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceForTest() (AuthService, *fakeProfileRepo) {
	utils.InitJWT("test-secret")
	profileRepo := newFakeProfileRepo()
	return NewAuthService(profileRepo, nil), profileRepo
}

func TestRegister(t *testing.T) {
	svc, profileRepo := newAuthServiceForTest()

	resp, err := svc.Register(RegisterRequest{
		Email:    "Budi@Example.com",
		Password: "supersecret",
		FullName: "Budi Santoso",
	})

	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", resp.User.Email)
	assert.Equal(t, models.RoleCustomer, resp.User.Role)
	assert.True(t, resp.User.IsActive)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// Stored hash is not the plaintext and verifies against it.
	hash := profileRepo.hashes[resp.User.ID]
	assert.NotEqual(t, "supersecret", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("supersecret")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	_, err := svc.Register(RegisterRequest{Email: "budi@example.com", Password: "supersecret", FullName: "Budi"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterRequest{Email: "budi@example.com", Password: "othersecret", FullName: "Budi 2"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	_, err := svc.Register(RegisterRequest{Email: "budi@example.com", Password: "supersecret", FullName: "Budi"})
	require.NoError(t, err)

	resp, err := svc.Login(LoginRequest{Email: "budi@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := utils.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	_, err := svc.Register(RegisterRequest{Email: "budi@example.com", Password: "supersecret", FullName: "Budi"})
	require.NoError(t, err)

	_, err = svc.Login(LoginRequest{Email: "budi@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	resp, err := svc.Register(RegisterRequest{Email: "budi@example.com", Password: "supersecret", FullName: "Budi"})
	require.NoError(t, err)

	_, err = svc.SetProfileActive(resp.User.ID, false)
	require.NoError(t, err)

	_, err = svc.Login(LoginRequest{Email: "budi@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestRefresh(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registered, err := svc.Register(RegisterRequest{Email: "budi@example.com", Password: "supersecret", FullName: "Budi"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(RefreshRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(RefreshRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCreateProfileWithRole(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	profile, err := svc.CreateProfile(CreateProfileRequest{
		Email:    "kurir@example.com",
		Password: "supersecret",
		FullName: "Kurir Satu",
		Role:     "courier",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCourier, profile.Role)

	_, err = svc.CreateProfile(CreateProfileRequest{
		Email:    "x@example.com",
		Password: "supersecret",
		FullName: "X",
		Role:     "owner",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registered, err := svc.Register(RegisterRequest{Email: "budi@example.com", Password: "supersecret", FullName: "Budi"})
	require.NoError(t, err)

	phone := "+628123456789"
	updated, err := svc.UpdateProfile(registered.User.ID, UpdateProfileRequest{
		FullName: "Budi S.",
		Phone:    &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Budi S.", updated.FullName)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)

	_, err = svc.UpdateProfile("missing", UpdateProfileRequest{FullName: "X"})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestSetProfileRole(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registered, err := svc.Register(RegisterRequest{Email: "budi@example.com", Password: "supersecret", FullName: "Budi"})
	require.NoError(t, err)

	updated, err := svc.SetProfileRole(registered.User.ID, "workshop_staff")
	require.NoError(t, err)
	assert.Equal(t, models.RoleWorkshopStaff, updated.Role)

	_, err = svc.SetProfileRole(registered.User.ID, "supervisor")
	assert.ErrorIs(t, err, ErrValidation)
}
