package service

import "errors"

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrWrongCredentials      = errors.New("wrong email or password")
	ErrProfileInactive       = errors.New("profile is deactivated")
	ErrTokenCreation         = errors.New("error during token creation")
	ErrTokenIsInvalid        = errors.New("given token is invalid")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrUnknownRole           = errors.New("unknown role")
)
