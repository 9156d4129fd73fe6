package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	ErrMissingEmail    = errors.New("missing email")
	ErrMissingPassword = errors.New("missing password")
	ErrPasswordTooLong = errors.New("password too long")
	ErrUserExists      = errors.New("user already exists")

	ErrMissingName = errors.New("missing name")
	ErrMissingType = errors.New("missing type")
	ErrMissingData = errors.New("missing data")
	ErrInvalidData = errors.New("invalid data")
	ErrStoreFile   = errors.New("cannot store the file")

	ErrMissingFileID = errors.New("missing fileId")
	ErrMissingUserID = errors.New("missing userId")
	ErrFileNotFound  = errors.New("file not found")
	ErrNotAnImage    = errors.New("not an image")
)
