package service

import "errors"

var (
	// ErrInvalidPaymentAmount is returned when payment amount is not positive
	// or has more than two decimal places.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrInvalidReceiver is returned when the receiver is empty.
	ErrInvalidReceiver = errors.New("invalid receiver")

	// ErrInvalidPaymentID is returned when payment ID is empty.
	ErrInvalidPaymentID = errors.New("invalid payment id")

	// ErrInvalidPaymentMethod is returned when payment method is invalid.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidPaymentStatus is returned when payment status is invalid.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrInvalidCredentials is returned when a login does not match an account.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a bearer token is unknown or expired.
	ErrInvalidToken = errors.New("invalid token")
)
