package manifest

import "errors"

var (
	ErrUnsupportedFormat  = errors.New("unsupported graph description format")
	ErrNoRoot             = errors.New("graph description has no root node")
	ErrUnknownNode        = errors.New("unknown node")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrUnknownArtifactSet = errors.New("unknown artifact set")
	ErrInvalidNode        = errors.New("invalid node")
	ErrInvalidArtifactSet = errors.New("invalid artifact set")
)
