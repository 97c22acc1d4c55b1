// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package database

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// User is a registered account. Each user owns exactly one tenant.
type User struct {
	UserID       string    `db:"user_id" json:"user_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	TenantID     string    `db:"tenant_id" json:"tenant_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CreateUser creates the user together with its tenant in one transaction.
// Emails are compared case-insensitively; a taken email yields ErrDuplicate.
func (db *DB) CreateUser(ctx context.Context, user *User) (err error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", classifyError(err))
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var taken int
	if err = tx.GetContext(ctx, &taken,
		db.rebind(`SELECT COUNT(*) FROM users WHERE email = ?`), user.Email); err != nil {
		return fmt.Errorf("failed to check email: %w", classifyError(err))
	}
	if taken > 0 {
		return fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
	}

	if _, err = tx.ExecContext(ctx,
		db.rebind(`INSERT INTO tenants (tenant_id) VALUES (?) ON CONFLICT (tenant_id) DO NOTHING`),
		user.TenantID); err != nil {
		return fmt.Errorf("failed to create tenant: %w", classifyError(err))
	}

	if _, err = tx.ExecContext(ctx,
		db.rebind(`INSERT INTO users (user_id, email, password_hash, tenant_id) VALUES (?, ?, ?, ?)`),
		user.UserID, user.Email, user.PasswordHash, user.TenantID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", classifyError(err))
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user: %w", classifyError(err))
	}
	return nil
}

// GetUserByEmail returns the user registered with email, or ErrNotFound.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var user User
	err := db.conn.GetContext(ctx, &user, db.rebind(`
		SELECT user_id, email, password_hash, tenant_id, created_at
		FROM users WHERE email = ?`), strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", classifyError(err))
	}
	return &user, nil
}
