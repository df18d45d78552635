package service

import "errors"

// ErrValidation marks a request the session cannot act on as given
var ErrValidation = errors.New("validation failed")
