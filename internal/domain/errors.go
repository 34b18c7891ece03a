package domain

import "errors"

// 业务错误集中定义，handler 层统一映射成 HTTP 状态码
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrDuplicatePhone      = errors.New("phone already registered")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNoPasswordProvided  = errors.New("no password provided for comparison")
	ErrNoPasswordOnRecord  = errors.New("no password hash loaded on user record")
	ErrListingNotAvailable = errors.New("listing is not available")
	ErrEmptyResponse       = errors.New("response message is required")
)
