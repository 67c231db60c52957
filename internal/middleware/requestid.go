package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader 请求 ID 头，入站没有就生成一个
const RequestIDHeader = "X-Request-Id"

// RequestIDMiddleware 给每个请求分配 ID，回写响应头并挂到当前 span 上
// 必须注册在追踪中间件之后，否则拿不到 span
func RequestIDMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		requestID := string(c.GetHeader(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Response.Header.Set(RequestIDHeader, requestID)

		// 添加请求 ID, 用于 tracing 对应的请求
		if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
			span.SetAttributes(attribute.String("http.request_id", toValidUTF8(requestID)))
		}

		c.Next(ctx)
	}
}

// GetRequestID 从请求上下文取出请求 ID
func GetRequestID(c *app.RequestContext) string {
	return c.GetString("request_id")
}
