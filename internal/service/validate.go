package service

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/SARVESHVARADKAR123/leetproxy/internal/model"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("leetcode_username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidateUsername rejects input that cannot be a LeetCode username, before
// any cache or network access.
func ValidateUsername(username string) error {
	if err := validate.Var(username, "required,max=64,leetcode_username"); err != nil {
		return fmt.Errorf("%w: %q", model.ErrInvalidUsername, username)
	}
	return nil
}
