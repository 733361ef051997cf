package idgen

import "github.com/google/uuid"

// NewFunc produces identifiers; tests may replace it to obtain
// deterministic values.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier.
func New() string { return NewFunc() }
