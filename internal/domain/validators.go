package domain

import (
	"fmt"
	"regexp"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// ValidateUsername checks registration usernames: 3-20 characters,
// letters, digits and underscores only.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-20 letters, numbers or underscores")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

// ValidateStake checks that a wager amount is positive.
func ValidateStake(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("stake must be positive, got %d", amount)
	}
	return nil
}

// ValidateBlackjackBets checks a deal request: up to 3 bet spots, no
// negative stakes, and at least one spot with a positive stake.
func ValidateBlackjackBets(bets []int64) (total int64, err error) {
	if len(bets) == 0 || len(bets) > 3 {
		return 0, fmt.Errorf("between 1 and 3 bet spots required, got %d", len(bets))
	}
	anyPositive := false
	for i, b := range bets {
		if b < 0 {
			return 0, fmt.Errorf("bet spot %d is negative", i)
		}
		if b > 0 {
			anyPositive = true
		}
		total += b
	}
	if !anyPositive {
		return 0, fmt.Errorf("at least one bet spot must have a positive stake")
	}
	return total, nil
}
