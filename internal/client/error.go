package client

import (
	"errors"
	"fmt"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrInvalidClient  = errors.New("invalid client")

	ErrNameRequired = fmt.Errorf("%w: name is required", ErrInvalidClient)
	ErrInvalidEmail = fmt.Errorf("%w: email is malformed", ErrInvalidClient)
)
