package amountwords

import "errors"

var (
	// ErrInvalidAmount is returned when an Amount is built from a negative or non-finite value.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrOutOfRange is returned by ConvertStrict when the whole units exceed the converter ceiling.
	ErrOutOfRange = errors.New("amount out of range")

	// ErrInvalidTable is returned when a word table cannot spell every value up to the ceiling.
	ErrInvalidTable = errors.New("invalid number word table")
)
