package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/rizqapp/rizq/internal/constants"
)

var (
	// ErrNotFound is returned when no value is stored in the keyring
	ErrNotFound = errors.New("not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString retrieves the catalog connection string from the OS
// keyring. Returns ErrNotFound if none is stored.
func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the catalog connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return set(constants.DefaultKeyringUser, connStr)
}

// DeleteConnectionString removes the catalog connection string from the OS keyring.
func DeleteConnectionString() error {
	return del(constants.DefaultKeyringUser)
}

// GetUserID retrieves the authenticated user id. An absent id is the
// supported anonymous/local-only mode, signalled by ErrNotFound.
func GetUserID() (string, error) {
	return get(constants.KeyringUserIDItem)
}

// SetUserID stores the authenticated user id in the OS keyring.
func SetUserID(userID string) error {
	if userID == "" {
		return errors.New("user id cannot be empty")
	}
	return set(constants.KeyringUserIDItem, userID)
}

// DeleteUserID removes the user id, returning the app to anonymous mode.
func DeleteUserID() error {
	return del(constants.KeyringUserIDItem)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}

func get(item string) (string, error) {
	value, err := keyring.Get(constants.AppName, item)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func set(item, value string) error {
	if err := keyring.Set(constants.AppName, item, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", item, err)
	}
	return nil
}

func del(item string) error {
	err := keyring.Delete(constants.AppName, item)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", item, err)
	}
	return nil
}
