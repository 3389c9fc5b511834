package services

import (
	"fmt"

	"github.com/dmitrijs2005/dailydiet/internal/common"
)

var (
	// ErrUserNotFound means no user is registered under the session token.
	ErrUserNotFound = fmt.Errorf("user %w", common.ErrorNotFound)
	// ErrDietNotFound means the diet does not exist or is not owned by the user.
	ErrDietNotFound = fmt.Errorf("diet %w", common.ErrorNotFound)
)
