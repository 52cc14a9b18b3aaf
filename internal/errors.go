package models

import "errors"

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateFavorite  = errors.New("favorite already exists")
	ErrDuplicatePromoCode = errors.New("promo code already exists")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrUnderage           = errors.New("you must be at least 18 years old to register")
	ErrNotCancellable     = errors.New("booking can no longer be cancelled")
	ErrSelfDelete         = errors.New("admins cannot delete their own account")
)
