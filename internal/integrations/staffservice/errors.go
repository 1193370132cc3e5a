package staffservice

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден в реестре
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrDepartmentNotFound возвращается, когда отделение не найдено
	ErrDepartmentNotFound = errors.New("department not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffservice client: invalid response")
)
