package model

// FibonacciResult 表示计算响应。
// 成功与失败两种形态互斥：零值字段不序列化，成功时只有 n/result，失败时只有 message。
type FibonacciResult struct {
	N       int64  `json:"n,omitempty"`
	Result  int64  `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewFibonacciSuccess 创建成功响应。
func NewFibonacciSuccess(n, result int64) FibonacciResult {
	return FibonacciResult{N: n, Result: result}
}

// NewFibonacciFailure 创建失败响应。
func NewFibonacciFailure(message string) FibonacciResult {
	return FibonacciResult{Message: message}
}
