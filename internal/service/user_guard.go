package service

import (
	"MindGarden/internal/repository"
	"context"
)

// ensureUser rejects tokens whose subject no longer has a users row.
func ensureUser(ctx context.Context, userRepo repository.UserRepo, userID uint64) error {
	user, err := userRepo.GetUserById(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}
