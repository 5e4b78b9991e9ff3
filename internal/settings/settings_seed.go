package settings

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultAdminPin = "6969"

// SeedAdminPin stores a bcrypt hash of ADMIN_PIN (or the shipped
// default) on first boot. An existing hash is never overwritten, so a
// PIN changed through the API survives restarts.
func SeedAdminPin(ctx context.Context, repo Repository) error {
	logger := zap.L().Named("settings.seed")

	_, err := repo.Get(ctx, KeyAdminPin)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	pin := os.Getenv("ADMIN_PIN")
	if pin == "" {
		pin = defaultAdminPin
		logger.Warn("ADMIN_PIN not set, seeding shipped default")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := repo.Set(ctx, KeyAdminPin, string(hash)); err != nil {
		return err
	}

	logger.Info("admin pin seeded ✅")
	return nil
}
