package game

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound      = errors.New("user_not_found")
	ErrBannerNotFound    = errors.New("banner_not_found")
	ErrBannerInactive    = errors.New("banner_inactive")
	ErrInsufficientFunds = errors.New("insufficient_funds")
	ErrInvalidBatchSize  = errors.New("invalid_batch_size")
	ErrEmptyParty        = errors.New("empty_party")
	ErrItemNotOwned      = errors.New("item_not_owned")
	ErrInvalidScore      = errors.New("invalid_score")
)

// CooldownError rejects an expedition attempt before any mutation and tells
// the caller how long to wait.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("expedition party is resting, try again in %s", formatCooldown(e.Remaining))
}

func formatCooldown(d time.Duration) string {
	totalSeconds := int((d + time.Second - 1) / time.Second)
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	switch {
	case minutes >= 5:
		return fmt.Sprintf("%dm", minutes)
	case minutes > 0 && seconds > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	case seconds > 0:
		return fmt.Sprintf("%ds", seconds)
	default:
		return "a moment"
	}
}
