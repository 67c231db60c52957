package router

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"

	"FibServer/internal/handler"
	"FibServer/internal/middleware"
)

// Register 注册中间件和路由
// tracingMW 在最前面接管链路传播，request-id 和指标都依赖它建立的 span 上下文
func Register(h *server.Hertz, tracingMW app.HandlerFunc, fib *handler.Fibonacci) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(tracingMW)
	h.Use(middleware.RequestIDMiddleware())
	h.Use(middleware.MetricsMiddleware())

	h.GET("/fibonacci", fib.Compute)
	h.GET("/healthz", handler.Healthz)
}
