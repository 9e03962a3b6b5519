package models

import "errors"

var (
	ErrInvalidParallelism = errors.New("parallelism must be at least one")
	ErrInputOpen          = errors.New("could not open input file")
	ErrInputSize          = errors.New("cannot obtain input file size")
	ErrAllocation         = errors.New("not enough memory")
	ErrWorkerAbnormal     = errors.New("worker did not terminate properly")
	ErrOutputWrite        = errors.New("could not write output file")
)

// ErrorType returns the short tag stored alongside a failed run or worker.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidParallelism):
		return "config_error"
	case errors.Is(err, ErrInputOpen):
		return "input_open_error"
	case errors.Is(err, ErrInputSize):
		return "input_size_error"
	case errors.Is(err, ErrAllocation):
		return "allocation_error"
	case errors.Is(err, ErrWorkerAbnormal):
		return "worker_error"
	case errors.Is(err, ErrOutputWrite):
		return "output_write_error"
	default:
		return "unknown_error"
	}
}
