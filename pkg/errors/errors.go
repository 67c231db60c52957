package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 计算相关错误。
// 取值范围上限 90 是结构性约束，把结果限制在 int64 以内。
var (
	FibOutOfRange = Definition{Code: "FIB_OUT_OF_RANGE", Message: "n must be between 1 and 90"}
)

// 请求相关错误。
var (
	InvalidRequest = Definition{Code: "INVALID_REQUEST", Message: "Invalid request"}
	InternalError  = Definition{Code: "INTERNAL_ERROR", Message: "Internal server error"}
)
