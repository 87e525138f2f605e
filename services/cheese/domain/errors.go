package domain

import "errors"

// Sentinel errors for the cheese domain. Use errors.Is() to check these.
var (
	// ErrCheeseListingNotFound indicates the requested listing does not exist.
	ErrCheeseListingNotFound = errors.New("cheese listing not found")

	// ErrInvalidCheeseListing indicates a listing failed field validation.
	ErrInvalidCheeseListing = errors.New("invalid cheese listing")

	// ErrIDAlreadyAssigned indicates an attempt to assign an identifier twice.
	ErrIDAlreadyAssigned = errors.New("id already assigned")

	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidUser indicates a user failed field validation.
	ErrInvalidUser = errors.New("invalid user")

	// ErrMalformedPayload indicates a request body that does not fit the
	// write representation, such as a string where a number belongs.
	ErrMalformedPayload = errors.New("malformed payload")
)
