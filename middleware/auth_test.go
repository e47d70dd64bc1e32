package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campfinder/config"
	"campfinder/database/query"
	"campfinder/models"
	"campfinder/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func (f *fakeUserRepo) List(ctx context.Context, opts query.Options) ([]models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (f *fakeUserRepo) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expire time.Time) error {
	return nil
}

func (f *fakeUserRepo) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func protectedRouter(repo *fakeUserRepo, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{Protect(repo)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": CurrentUser(c).Name})
	})
	r.GET("/guarded", chain...)
	return r
}

func seedRepo() (*fakeUserRepo, *models.User) {
	usr := &models.User{
		ID:   primitive.NewObjectID(),
		Name: "John Doe",
		Role: models.RolePublisher,
	}
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{usr.ID: usr}}, usr
}

func TestProtectWithBearerToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.JWTExpireHours = 1
	repo, usr := seedRepo()

	token, err := utils.GenerateToken(usr.ID.Hex())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "John Doe")
}

func TestProtectWithCookie(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.JWTExpireHours = 1
	repo, usr := seedRepo()

	token, err := utils.GenerateToken(usr.ID.Hex())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	protectedRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectRejectsMissingToken(t *testing.T) {
	repo, _ := seedRepo()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	protectedRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized to access this route")
}

func TestProtectRejectsGarbageToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	repo, _ := seedRepo()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	protectedRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectRejectsTokenForDeletedUser(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.JWTExpireHours = 1
	repo, _ := seedRepo()

	// Valid signature, but the subject no longer exists.
	token, err := utils.GenerateToken(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRolesForbidsWrongRole(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.JWTExpireHours = 1
	repo, usr := seedRepo()

	token, err := utils.GenerateToken(usr.ID.Hex())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(repo, RequireRoles(models.RoleAdmin)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "User role publisher is not authorized")
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.JWTExpireHours = 1
	repo, usr := seedRepo()

	token, err := utils.GenerateToken(usr.ID.Hex())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(repo, RequireRoles(models.RolePublisher, models.RoleAdmin)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
