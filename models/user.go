// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account of the task tracker.
// PasswordHash is a bcrypt digest and is never serialized.
type User struct {
	// ID is the opaque unique identifier assigned at signup.
	ID string `json:"id"`

	// Username is unique across all users, 3-50 characters.
	Username string `json:"username"`

	// Email is unique across all users.
	Email string `json:"email"`

	// PasswordHash is the salted one-way digest of the user's password.
	PasswordHash string `json:"-"`

	// FullName is an optional display name.
	FullName *string `json:"full_name"`

	// CreatedAt is stamped once at signup.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6,password_bytes"`
	FullName *string `json:"full_name,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdate is a partial update of the user profile.
// Only fields with Set == true are applied.
type UserUpdate struct {
	Username Optional[string] `json:"username,omitzero"`
	Email    Optional[string] `json:"email,omitzero"`
	FullName Optional[string] `json:"full_name,omitzero"`
	Password Optional[string] `json:"password,omitzero"`
}

// IsEmpty reports whether no field was supplied.
func (u UserUpdate) IsEmpty() bool {
	return !u.Username.Set && !u.Email.Set && !u.FullName.Set && !u.Password.Set
}

// UserPatch is the storage-level form of [UserUpdate]: plaintext password
// already replaced with its digest.
type UserPatch struct {
	Username     Optional[string]
	Email        Optional[string]
	FullName     Optional[string]
	PasswordHash Optional[string]
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return !p.Username.Set && !p.Email.Set && !p.FullName.Set && !p.PasswordHash.Set
}
