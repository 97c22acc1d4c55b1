// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// PasswordPolicy defines requirements for account passwords.
type PasswordPolicy struct {
	MinLength             int
	MaxLength             int
	RequireLetter         bool
	RequireDigit          bool
	MaxConsecutiveRepeats int // 0 = disabled
	ForbidCommonPasswords bool
	ForbidEmailSimilarity bool
}

// ErrWeakPassword wraps every password policy violation.
var ErrWeakPassword = errors.New("password does not meet policy")

// DefaultPasswordPolicy returns the policy applied at registration.
// MaxLength matches the 72-byte input limit of bcrypt.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:             8,
		MaxLength:             72,
		RequireLetter:         true,
		RequireDigit:          true,
		MaxConsecutiveRepeats: 4,
		ForbidCommonPasswords: true,
		ForbidEmailSimilarity: true,
	}
}

// Check validates password for the account identified by email and returns
// every violation joined into one error.
func (p PasswordPolicy) Check(password, email string) error {
	var problems []string

	if len(password) < p.MinLength {
		problems = append(problems, fmt.Sprintf("must be at least %d characters", p.MinLength))
	}
	if p.MaxLength > 0 && len(password) > p.MaxLength {
		problems = append(problems, fmt.Sprintf("must be at most %d bytes", p.MaxLength))
	}

	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if p.RequireLetter && !hasLetter {
		problems = append(problems, "must contain a letter")
	}
	if p.RequireDigit && !hasDigit {
		problems = append(problems, "must contain a digit")
	}

	if p.MaxConsecutiveRepeats > 0 && maxConsecutiveRepeats(password) > p.MaxConsecutiveRepeats {
		problems = append(problems,
			fmt.Sprintf("cannot repeat a character more than %d times in a row", p.MaxConsecutiveRepeats))
	}
	if p.ForbidCommonPasswords && commonPasswords[strings.ToLower(password)] {
		problems = append(problems, "is too common")
	}
	if p.ForbidEmailSimilarity && isSimilarToEmail(password, email) {
		problems = append(problems, "is too similar to the email address")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: password %s", ErrWeakPassword, strings.Join(problems, "; "))
	}
	return nil
}

// maxConsecutiveRepeats returns the longest run of one repeated character.
func maxConsecutiveRepeats(password string) int {
	maxRun, run := 0, 0
	var last rune
	for i, r := range password {
		if i > 0 && r == last {
			run++
		} else {
			run = 1
		}
		if run > maxRun {
			maxRun = run
		}
		last = r
	}
	return maxRun
}

// isSimilarToEmail reports whether the password contains the email's local part
// (or vice versa) once the local part is at least 4 characters.
func isSimilarToEmail(password, email string) bool {
	local, _, _ := strings.Cut(strings.ToLower(email), "@")
	if len(local) < 4 {
		return false
	}
	lowerPass := strings.ToLower(password)
	return strings.Contains(lowerPass, local) || strings.Contains(local, lowerPass)
}

// commonPasswords are breached passwords that satisfy the character rules.
var commonPasswords = map[string]bool{
	"password1":   true,
	"password123": true,
	"abc12345":    true,
	"qwerty123":   true,
	"admin123":    true,
	"passw0rd":    true,
	"trustno1":    true,
	"letmein1":    true,
	"welcome1":    true,
	"welcome123":  true,
	"iloveyou1":   true,
	"sunshine1":   true,
	"1q2w3e4r":    true,
	"1qaz2wsx":    true,
	"zaq12wsx":    true,
}
