package workloaderror

import "fmt"

// PanicError carries a value recovered from a panicking test action along
// with the stack of the goroutine that panicked.
type PanicError struct {
	any
	Stack []byte
}

func NewPanicError(any any, stack []byte) PanicError {
	return PanicError{
		any:   any,
		Stack: stack,
	}
}

func (pe PanicError) Error() string {
	return fmt.Sprintf("panic occurred: %v", pe.any)
}

// Unwrap exposes the panic value when it was itself an error.
func (pe PanicError) Unwrap() error {
	if err, ok := pe.any.(error); ok {
		return err
	}

	return nil
}
