package justification

import "errors"

var (
	ErrJustificationNotFound = errors.New("justification not found")
)
