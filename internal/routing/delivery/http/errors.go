package http

import "fmt"

// fileTooLargeError maps to 413 instead of the generic 400.
type fileTooLargeError struct {
	Name string
	Max  int64
}

func (e *fileTooLargeError) Error() string {
	return fmt.Sprintf("file %s exceeds maximum size of %d bytes", e.Name, e.Max)
}
