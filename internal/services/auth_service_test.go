package services_test

import (
	"testing"

	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newAuthService() (*services.AuthService, *repositories.MemoryStore) {
	store := repositories.NewMemoryStore()
	return services.NewAuthService(store.Users(), testJWTSecret), store
}

func registerBuyer(t *testing.T, svc *services.AuthService, username, email, password string) models.User {
	t.Helper()
	user := models.User{
		Name:     "Test " + username,
		Username: username,
		Email:    email,
		Password: password,
		Phone:    "555",
		Address:  "somewhere",
		Role:     models.RoleBuyer,
	}
	require.NoError(t, svc.RegisterUser(&user))
	return user
}

func TestRegisterUser_HashesPasswordAndZeroesBalance(t *testing.T) {
	svc, store := newAuthService()

	user := models.User{
		Name: "Alice", Username: "alice", Email: "alice@example.com",
		Password: "secret123", Phone: "555", Address: "x",
		Role: models.RoleBuyer, Balance: 9999,
	}
	require.NoError(t, svc.RegisterUser(&user))

	stored, err := store.Users().GetByID(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.Equal(t, 0.0, stored.Balance)
}

func TestRegisterUser_RejectsAdminRole(t *testing.T) {
	svc, _ := newAuthService()

	user := models.User{Name: "Mallory", Username: "mallory", Email: "m@example.com", Password: "x", Phone: "5", Address: "x", Role: models.RoleAdmin}
	err := svc.RegisterUser(&user)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestRegisterUser_DuplicateUsernameAndEmail(t *testing.T) {
	svc, _ := newAuthService()
	registerBuyer(t, svc, "bob", "bob@example.com", "pw")

	dup := models.User{Name: "Bob2", Username: "bob", Email: "bob2@example.com", Password: "pw", Phone: "5", Address: "x", Role: models.RoleBuyer}
	err := svc.RegisterUser(&dup)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))

	dup = models.User{Name: "Bob3", Username: "bob3", Email: "bob@example.com", Password: "pw", Phone: "5", Address: "x", Role: models.RoleBuyer}
	err = svc.RegisterUser(&dup)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))
}

func TestLoginUser_Success(t *testing.T) {
	svc, _ := newAuthService()
	registerBuyer(t, svc, "carol", "carol@example.com", "pw123")

	token, user, err := svc.LoginUser("carol@example.com", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "carol", user.Username)
}

func TestLoginUser_BadCredentials(t *testing.T) {
	svc, _ := newAuthService()
	registerBuyer(t, svc, "dave", "dave@example.com", "pw123")

	_, _, err := svc.LoginUser("dave@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Authorization))
	assert.Contains(t, err.Error(), "invalid credentials")

	// Unknown email gets the same message as a wrong password.
	_, _, err = svc.LoginUser("nobody@example.com", "pw123")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Authorization))
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLoginUser_UnapprovedSellerBlocked(t *testing.T) {
	svc, store := newAuthService()

	seller := models.User{Name: "Eve", Username: "eve", Email: "eve@example.com", Password: "pw", Phone: "5", Address: "x", Role: models.RoleSeller}
	require.NoError(t, svc.RegisterUser(&seller))

	_, _, err := svc.LoginUser("eve@example.com", "pw")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Authorization))
	assert.Contains(t, err.Error(), "seller not approved")

	require.NoError(t, store.Users().Approve(seller.ID))
	_, _, err = svc.LoginUser("eve@example.com", "pw")
	assert.NoError(t, err)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	svc, _ := newAuthService()
	user := registerBuyer(t, svc, "frank", "frank@example.com", "pw")

	token, _, err := svc.LoginUser("frank@example.com", "pw")
	require.NoError(t, err)

	identity, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, models.RoleBuyer, identity.Role)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Authorization))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc, store := newAuthService()
	registerBuyer(t, svc, "grace", "grace@example.com", "pw")

	token, _, err := svc.LoginUser("grace@example.com", "pw")
	require.NoError(t, err)

	other := services.NewAuthService(store.Users(), "different-secret")
	_, err = other.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Authorization))
}
