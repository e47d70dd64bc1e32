package user

import (
	"context"
	"time"

	"campfinder/services/tasks"
	"campfinder/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ForgotPassword generates a reset token, stores its hash with a bounded
// expiry, and queues the reset email. If the email cannot be queued the
// token is cleared immediately so a retry issues a fresh one.
func (s *DefaultUserService) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	usr, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return utils.FromStoreError(err, "email")
	}
	if usr == nil {
		return &utils.APIError{Status: 404, Message: "There is no user with that email"}
	}

	resetToken := uuid.NewString()
	expire := time.Now().Add(utils.ResetTokenTTL)
	if err := s.Repo.SetResetToken(ctx, usr.ID, utils.HashToken(resetToken), expire); err != nil {
		return utils.FromStoreError(err, "resetPasswordToken")
	}

	task, err := tasks.NewResetPasswordEmailTask(tasks.ResetPasswordEmailPayload{
		UserID:   usr.ID.Hex(),
		Email:    usr.Email,
		ResetURL: resetURLBase + "/" + resetToken,
	})
	if err == nil {
		_, err = s.Tasks.Enqueue(task)
	}
	if err != nil {
		utils.GetLogger().Error("failed to queue reset email", zap.Error(err))
		if clearErr := s.Repo.ClearResetToken(ctx, usr.ID); clearErr != nil {
			utils.GetLogger().Error("failed to clear reset token", zap.Error(clearErr))
		}
		return utils.NewServerError("Email could not be sent")
	}
	return nil
}

// ResetPassword consumes a reset token: the token must hash to a stored
// value whose expiry is still in the future. On success the password is
// replaced, the token cleared, and a fresh login token issued.
func (s *DefaultUserService) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	usr, err := s.Repo.GetByResetToken(ctx, utils.HashToken(token), time.Now())
	if err != nil {
		return "", utils.FromStoreError(err, "resetPasswordToken")
	}
	if usr == nil {
		// Unknown and expired tokens are indistinguishable on purpose.
		return "", utils.NewBadRequest("Invalid Token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", utils.NewServerError("Unable to reset password")
	}
	if _, err := s.Repo.Update(ctx, usr.ID, bson.M{"password": string(hash)}); err != nil {
		return "", utils.FromStoreError(err, "password")
	}
	if err := s.Repo.ClearResetToken(ctx, usr.ID); err != nil {
		utils.GetLogger().Error("failed to clear consumed reset token", zap.Error(err))
	}

	signed, err := utils.GenerateToken(usr.ID.Hex())
	if err != nil {
		utils.GetLogger().Error("failed to sign token", zap.Error(err))
		return "", utils.NewServerError("Unable to reset password")
	}
	return signed, nil
}
