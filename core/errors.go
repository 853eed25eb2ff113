package core

import "errors"

var (
	ErrDuplicateLabel       = errors.New("item label already registered")
	ErrNotFound             = errors.New("item not found")
	ErrInvalidPlacementMode = errors.New("invalid placement mode")

	// ErrDegenerateQuaternion is reported when a normalization step meets a
	// near-zero quaternion. The result is replaced by the identity rotation.
	ErrDegenerateQuaternion = errors.New("degenerate quaternion")
)
