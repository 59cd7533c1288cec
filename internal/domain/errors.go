package domain

import "errors"

var (
	ErrInvalidCommand    = errors.New("invalid command")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
