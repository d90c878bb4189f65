package service

import "errors"

// Errors whose text is shown to API callers as the response detail.
var (
	ErrEmailAlreadyRegistered = errors.New("Email already registered")
	ErrEmailAlreadyInUse      = errors.New("Email already in use")
	ErrUsernameAlreadyTaken   = errors.New("Username already taken")
	ErrIncorrectCredentials   = errors.New("Incorrect email or password")
	ErrInvalidCredentials     = errors.New("Could not validate credentials")
	ErrTaskNotFound           = errors.New("Task not found")
	ErrNoFieldsToUpdate       = errors.New("No fields to update")
)

var (
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
