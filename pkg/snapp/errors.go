package snapp

import "errors"

// ErrNotConnected is returned when rendering into a target that is not part
// of the document.
var ErrNotConnected = errors.New("snapp: target is not connected to the document")

// ErrUnsupportedContent is returned when Render is given something other
// than a node, a string or a number.
var ErrUnsupportedContent = errors.New("snapp: unsupported render content")

// ErrInvalidSelector is returned when a selector cannot be parsed.
var ErrInvalidSelector = errors.New("snapp: invalid selector")

// ErrNoMatch is returned when a valid selector matches nothing.
var ErrNoMatch = errors.New("snapp: no element matches selector")
