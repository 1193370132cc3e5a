package copy_schedules

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("copy_schedules: internal error")
)
