package services_test

import (
	"fmt"
	"testing"
	"time"

	"bloomshop/internal/apperrors"
	"bloomshop/internal/guard"
	"bloomshop/internal/models"
	"bloomshop/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newRegistration(role string) *models.User {
	return &models.User{
		FirstName:   "Martina",
		LastName:    "Berisha",
		Username:    "martina",
		Email:       "martina@example.com",
		PhoneNumber: "049123456",
		Password:    "password123",
		Role:        role,
	}
}

func TestAuthService_Register_DefaultsRoleToUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := newRegistration("")
	mockRepo.On("GetByUsername", user.Username).Return(nil, apperrors.NotFound("user", user.Username)).Once()
	mockRepo.On("GetByEmail", user.Email).Return(nil, apperrors.NotFound("user", user.Email)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.Register(user)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	// The stored password must be a bcrypt hash, not the plaintext.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	// A regular registration never consults the admin count.
	mockRepo.AssertNotCalled(t, "CountByRole", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := newRegistration(models.RoleUser)
	mockRepo.On("GetByUsername", user.Username).Return(&models.User{ID: "u-1"}, nil).Once()

	err := authService.Register(user)
	var conflict *apperrors.ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Message, "already taken")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_EmailRegistered(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := newRegistration(models.RoleUser)
	mockRepo.On("GetByUsername", user.Username).Return(nil, apperrors.NotFound("user", user.Username)).Once()
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: "u-1"}, nil).Once()

	err := authService.Register(user)
	var conflict *apperrors.ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Message, "already registered")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

// A store failure during the uniqueness lookup aborts the registration; it is
// not mistaken for "username free".
func TestAuthService_Register_StoreErrorAborts(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := newRegistration(models.RoleUser)
	mockRepo.On("GetByUsername", user.Username).
		Return(nil, &apperrors.StoreError{Op: "get user by username", Cause: fmt.Errorf("connection refused")}).Once()

	err := authService.Register(user)
	var storeErr *apperrors.StoreError
	assert.ErrorAs(t, err, &storeErr)
	mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_AdminDeniedAtCap(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := newRegistration(models.RoleAdmin)
	mockRepo.On("GetByUsername", user.Username).Return(nil, apperrors.NotFound("user", user.Username)).Once()
	mockRepo.On("GetByEmail", user.Email).Return(nil, apperrors.NotFound("user", user.Email)).Once()
	mockRepo.On("CountByRole", models.RoleAdmin).Return(int64(10), nil).Once()

	err := authService.Register(user)
	var denied *apperrors.PolicyDeniedError
	assert.ErrorAs(t, err, &denied)
	assert.Equal(t, guard.ReasonMaxAdmins, denied.Reason)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_AdminAllowedBelowCap(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := newRegistration(models.RoleAdmin)
	mockRepo.On("GetByUsername", user.Username).Return(nil, apperrors.NotFound("user", user.Username)).Once()
	mockRepo.On("GetByEmail", user.Email).Return(nil, apperrors.NotFound("user", user.Email)).Once()
	mockRepo.On("CountByRole", models.RoleAdmin).Return(int64(9), nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.Register(user)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_ValidationRunsFirst(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := newRegistration(models.RoleUser)
	user.FirstName = "Al" // below the 4 character minimum
	user.Password = "12345"

	err := authService.Register(user)
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "FirstName")
	assert.Contains(t, validationErr.Fields, "Password")
	mockRepo.AssertNotCalled(t, "GetByUsername", mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "martina",
		Email:    "martina@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}

	// Successful login returns a token carrying id, username and role.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, loggedIn, err := authService.Login(user.Email, "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Username, claims["username"])
	assert.Equal(t, models.RoleAdmin, claims["role"])
	mockRepo.AssertExpectations(t)

	// Wrong password yields the generic credentials error.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, err = authService.Login(user.Email, "wrongpassword")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")
	mockRepo.AssertExpectations(t)

	// Unknown email yields the same generic error.
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, apperrors.NotFound("user", "nobody@example.com")).Once()
	_, _, err = authService.Login("nobody@example.com", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "martina",
		"role":     models.RoleUser,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, models.RoleUser, claims["role"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}
