package response

// 业务状态码
const (
	CodeSuccess = 0

	// 用户模块错误 100xx
	ErrUserExists   = 10001
	ErrUserNotFound = 10002

	// 动态模块错误 200xx
	ErrPostNotFound = 20001

	// 上传错误 300xx
	ErrFileTooLarge = 30001
	ErrFileType     = 30002

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
