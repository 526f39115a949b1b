package orbit3d

import "github.com/pkg/errors"

var (
	ErrMissingRoot     = errors.New("model has no \"root\" child")
	ErrDuplicateChild  = errors.New("child name already in use")
	ErrInvalidChild    = errors.New("invalid child")
	ErrFaceOutOfRange  = errors.New("face index out of range")
	ErrNoFaceLayout    = errors.New("shape has no per-face layout")
	ErrUnknownShape    = errors.New("unknown shape kind")
	ErrInvalidShape    = errors.New("invalid shape parameters")
	ErrTooManyVertices = errors.New("geometry exceeds 16-bit index range")
	ErrNoGeometry      = errors.New("mesh has no geometry")
)
