package payment

import "errors"

var (
	ErrChargeNotSucceeded = errors.New("charge was not successful")
	ErrInvalidAmount      = errors.New("charge amount must be positive")
)
