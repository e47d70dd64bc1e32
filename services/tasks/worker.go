package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	userRepo "campfinder/database/repository/user"
	"campfinder/utils"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// EmailWorker processes queued outbound email tasks.
type EmailWorker struct {
	Users userRepo.UserRepository
}

// HandleResetPasswordEmail delivers a password-reset email. If delivery
// fails the stored reset token is cleared so a retry of the forgot-password
// flow can issue a fresh one instead of leaving a valid but undeliverable
// token behind.
func (w *EmailWorker) HandleResetPasswordEmail(ctx context.Context, t *asynq.Task) error {
	var payload ResetPasswordEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid reset email payload: %w", err)
	}

	body := fmt.Sprintf(
		"You are receiving this email because you (or someone else) has requested the reset of a password. "+
			"Please make a PUT request to:\n\n%s", payload.ResetURL)

	if err := utils.SendMail(payload.Email, "Password reset token", body); err != nil {
		utils.GetLogger().Error("reset email delivery failed",
			zap.String("email", payload.Email), zap.Error(err))
		if id, idErr := primitive.ObjectIDFromHex(payload.UserID); idErr == nil {
			if clearErr := w.Users.ClearResetToken(ctx, id); clearErr != nil {
				utils.GetLogger().Error("failed to clear reset token after delivery failure",
					zap.String("userId", payload.UserID), zap.Error(clearErr))
			}
		}
		return asynq.SkipRetry
	}
	return nil
}

// StartWorker runs the asynq server handling email tasks in the background.
// The returned server can be shut down during process teardown.
func StartWorker(users userRepo.UserRepository) *asynq.Server {
	srv := asynq.NewServer(RedisOpt(), asynq.Config{Concurrency: 2})
	mux := asynq.NewServeMux()
	worker := &EmailWorker{Users: users}
	mux.HandleFunc(TypeResetPasswordEmail, worker.HandleResetPasswordEmail)

	go func() {
		if err := srv.Run(mux); err != nil {
			utils.GetLogger().Error("email worker stopped", zap.Error(err))
		}
	}()
	return srv
}
