package services

import (
	"errors"
	"regexp"

	"taskboard/common"
	"taskboard/config"

	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidID reports whether id is a canonical UUID string, the only
// document id format the store hands out.
func IsValidID(id string) bool {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return parsed.String() == id
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return errors.New(common.ErrEmailInvalid)
	}
	return nil
}

func ValidateName(name string) error {
	if len(name) < 2 || len(name) > 100 {
		return errors.New(common.ErrNameLength)
	}
	return nil
}

func ValidatePassword(cfg *config.Config, password string) error {
	if len(password) < cfg.MinPasswordLength || len(password) > cfg.MaxPasswordLength {
		return errors.New(common.ErrPwdLength)
	}
	return nil
}

func ValidateTitle(title string) error {
	if len(title) < 1 || len(title) > 100 {
		return errors.New(common.ErrTitleLength)
	}
	return nil
}

func ValidateDescription(description string) error {
	if len(description) > 1000 {
		return errors.New(common.ErrDescLength)
	}
	return nil
}
