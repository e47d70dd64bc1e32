package tasks

import (
	"encoding/json"

	"campfinder/config"

	"github.com/hibiken/asynq"
)

const TypeResetPasswordEmail = "email:reset_password"

// ResetPasswordEmailPayload carries what the worker needs to deliver a
// password-reset email. UserID is kept so a failed delivery can void the
// token it announces.
type ResetPasswordEmailPayload struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	ResetURL string `json:"resetUrl"`
}

// NewResetPasswordEmailTask builds the asynq task for a reset email.
func NewResetPasswordEmailTask(payload ResetPasswordEmailPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeResetPasswordEmail, b, asynq.MaxRetry(3)), nil
}

// RedisOpt returns the broker connection options shared by the task client
// and the worker.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}
}
