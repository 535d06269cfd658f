package models

import "errors"

var (
	ErrEventExists  = errors.New("event id already exists")
	ErrUserNotFound = errors.New("user not found")
)
