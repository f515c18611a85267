package model

import "errors"

// ErrInvalidUsername is returned for input rejected before any cache or
// upstream access.
var ErrInvalidUsername = errors.New("invalid username")
