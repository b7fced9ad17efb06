package models

import "errors"

// ErrUnsupportedKind marks scene elements the device cannot represent.
// It is reported and the element skipped; the export carries on.
var ErrUnsupportedKind = errors.New("unsupported element kind")
