package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"FibServer/internal/model"
	"FibServer/pkg/errors"
)

// Result 返回计算结果
// 接口契约是 always-200：range 校验失败也是数据而不是传输层错误
func Result(ctx context.Context, c *app.RequestContext, result model.FibonacciResult) {
	c.JSON(http.StatusOK, result)
}

// Failure 把业务错误映射为 200 + {message}
func Failure(ctx context.Context, c *app.RequestContext, err error) {
	var message string
	if def, ok := err.(errors.Definition); ok {
		message = def.Message
	} else {
		message = err.Error()
	}

	c.JSON(http.StatusOK, model.NewFibonacciFailure(message))
}

// BindError 返回请求解析失败响应
// 类型转换是 HTTP 前端的职责，解析不了的 n 属于协议层错误，用 400
func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, model.NewFibonacciFailure(errors.InvalidRequest.Message+": "+err.Error()))
}

// InternalError 返回 500，recover 中间件使用
func InternalError(ctx context.Context, c *app.RequestContext) {
	c.JSON(http.StatusInternalServerError, model.NewFibonacciFailure(errors.InternalError.Message))
}
