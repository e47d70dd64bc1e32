package user

import (
	"context"

	userRepo "campfinder/database/repository/user"
	"campfinder/models"
	"campfinder/utils"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultUserService is the production implementation of UserService.
type DefaultUserService struct {
	Repo  userRepo.UserRepository
	Tasks *asynq.Client
}

// Register creates an account and issues its first token. Only the user and
// publisher roles may be self-assigned; admins are provisioned out of band.
func (s *DefaultUserService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RolePublisher {
		return nil, "", utils.NewBadRequest("Role %s cannot be registered", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", utils.NewServerError("Unable to create user")
	}

	usr := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Role:     role,
		Password: string(hash),
	}
	if err := s.Repo.Create(ctx, usr); err != nil {
		return nil, "", utils.FromStoreError(err, "email")
	}

	token, err := utils.GenerateToken(usr.ID.Hex())
	if err != nil {
		utils.GetLogger().Error("failed to sign token", zap.Error(err))
		return nil, "", utils.NewServerError("Unable to create user")
	}
	return usr, token, nil
}

// Login verifies the credentials and issues a token. The error never reveals
// which of the two fields was wrong.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	usr, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", utils.FromStoreError(err, "email")
	}
	if usr == nil {
		return nil, "", utils.NewUnauthorized("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(password)); err != nil {
		return nil, "", utils.NewUnauthorized("Invalid credentials")
	}

	token, err := utils.GenerateToken(usr.ID.Hex())
	if err != nil {
		utils.GetLogger().Error("failed to sign token", zap.Error(err))
		return nil, "", utils.NewServerError("Authentication failed, please try again")
	}
	return usr, token, nil
}

// GetByID fetches a user, mapping absence to a not-found error.
func (s *DefaultUserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	usr, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.FromStoreError(err, "id")
	}
	if usr == nil {
		return nil, utils.NewNotFound("User", id.Hex())
	}
	return usr, nil
}

// UpdateDetails changes the caller's name and email.
func (s *DefaultUserService) UpdateDetails(ctx context.Context, id primitive.ObjectID, name, email string) (*models.User, error) {
	fields := bson.M{}
	if name != "" {
		fields["name"] = name
	}
	if email != "" {
		fields["email"] = email
	}
	if len(fields) == 0 {
		return nil, utils.NewBadRequest("Please provide a name or email to update")
	}

	usr, err := s.Repo.Update(ctx, id, fields)
	if err != nil {
		return nil, utils.FromStoreError(err, "email")
	}
	if usr == nil {
		return nil, utils.NewNotFound("User", id.Hex())
	}
	return usr, nil
}

// UpdatePassword verifies the current password before replacing it, and
// issues a fresh token on success.
func (s *DefaultUserService) UpdatePassword(ctx context.Context, id primitive.ObjectID, currentPassword, newPassword string) (string, error) {
	usr, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return "", utils.FromStoreError(err, "id")
	}
	if usr == nil {
		return "", utils.NewNotFound("User", id.Hex())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(currentPassword)); err != nil {
		return "", utils.NewUnauthorized("Password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", utils.NewServerError("Unable to update password")
	}
	if _, err := s.Repo.Update(ctx, id, bson.M{"password": string(hash)}); err != nil {
		return "", utils.FromStoreError(err, "password")
	}

	token, err := utils.GenerateToken(id.Hex())
	if err != nil {
		utils.GetLogger().Error("failed to sign token", zap.Error(err))
		return "", utils.NewServerError("Unable to update password")
	}
	return token, nil
}
