package user

import (
	"context"

	"campfinder/database/query"
	"campfinder/models"
	"campfinder/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Admin-only user management.

// List returns a page of users with pagination metadata. The total backing
// next/prev is the unfiltered collection count.
func (s *DefaultUserService) List(ctx context.Context, opts query.Options) ([]models.User, models.Pagination, error) {
	total, err := s.Repo.CountAll(ctx)
	if err != nil {
		return nil, models.Pagination{}, utils.FromStoreError(err, "users")
	}
	users, err := s.Repo.List(ctx, opts)
	if err != nil {
		return nil, models.Pagination{}, utils.FromStoreError(err, "users")
	}
	return users, query.Paginate(opts.Page, opts.Limit, total), nil
}

// CreateUser provisions an account with any role, including admin.
func (s *DefaultUserService) CreateUser(ctx context.Context, input RegisterInput) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RolePublisher && role != models.RoleAdmin {
		return nil, utils.NewBadRequest("Invalid role: %s", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewServerError("Unable to create user")
	}

	usr := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Role:     role,
		Password: string(hash),
	}
	if err := s.Repo.Create(ctx, usr); err != nil {
		return nil, utils.FromStoreError(err, "email")
	}
	return usr, nil
}

// UpdateUser changes a user's name, email or role.
func (s *DefaultUserService) UpdateUser(ctx context.Context, id primitive.ObjectID, name, email, role string) (*models.User, error) {
	fields := bson.M{}
	if name != "" {
		fields["name"] = name
	}
	if email != "" {
		fields["email"] = email
	}
	if role != "" {
		if role != models.RoleUser && role != models.RolePublisher && role != models.RoleAdmin {
			return nil, utils.NewBadRequest("Invalid role: %s", role)
		}
		fields["role"] = role
	}
	if len(fields) == 0 {
		return nil, utils.NewBadRequest("No fields to update")
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

// DeleteUser removes an account.
func (s *DefaultUserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	usr, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return utils.FromStoreError(err, "id")
	}
	if usr == nil {
		return utils.NewNotFound("User", id.Hex())
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return utils.FromStoreError(err, "id")
	}
	return nil
}
