package domain

import (
	"fmt"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks if an email address is valid.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// ValidateUserStatus checks an end-user status value.
func ValidateUserStatus(status string) error {
	switch status {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return nil
	}
	return fmt.Errorf("invalid status: %s", status)
}

// ValidateSubscriptionType checks a subscriber plan value.
func ValidateSubscriptionType(t string) error {
	switch t {
	case SubscriptionMonthly, SubscriptionYearly:
		return nil
	}
	return fmt.Errorf("invalid subscription type: %s", t)
}

// ValidateTargetType checks a notification target value.
func ValidateTargetType(t string) error {
	switch t {
	case NotificationTargetAll, NotificationTargetUser:
		return nil
	}
	return fmt.Errorf("invalid target type: %s", t)
}
