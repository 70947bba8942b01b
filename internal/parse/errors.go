package parse

import (
	"errors"
	"fmt"
)

// ErrStructural indicates text that passed classification but violates a
// structural precondition of its parser.
var ErrStructural = errors.New("structural parse error")

// StructuralError describes which construct failed and why.
type StructuralError struct {
	Construct string
	Reason    string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrStructural, e.Construct, e.Reason)
}

// Is lets errors.Is match ErrStructural.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}
