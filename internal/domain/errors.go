package domain

import "errors"

var (
	ErrIllegalParkedTransition = errors.New("illegal parked item transition")
	ErrItemOutOfRange          = errors.New("plan item index out of range")
)
