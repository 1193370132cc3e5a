package staffservice

// Doctor модель врача из StaffService (реестр персонала)
type Doctor struct {
	ID             int64   `json:"id"`
	FullName       string  `json:"full_name"`
	Specialization string  `json:"specialization"`
	DepartmentID   int64   `json:"department_id"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	IsActive       bool    `json:"is_active"`
}

// Department модель отделения из StaffService
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
