package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"FibServer/internal/model"
	"FibServer/internal/service"
	"FibServer/pkg/response"
)

// Fibonacci 持有注入的计算服务。
type Fibonacci struct {
	svc *service.FibonacciService
}

func NewFibonacci(svc *service.FibonacciService) *Fibonacci {
	return &Fibonacci{svc: svc}
}

// Compute 计算斐波那契数
// GET /fibonacci?n=<int>
// range 校验失败返回 200 + {message}，只有解析失败才是 400
func (h *Fibonacci) Compute(ctx context.Context, c *app.RequestContext) {
	raw := c.Query("n")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.BindError(ctx, c, fmt.Errorf("query parameter n must be an integer, got %q", raw))
		return
	}

	result, err := h.svc.Compute(ctx, n)
	if err != nil {
		response.Failure(ctx, c, err)
		return
	}

	response.Result(ctx, c, model.NewFibonacciSuccess(n, result))
}

// Healthz 存活探针
// GET /healthz
func Healthz(ctx context.Context, c *app.RequestContext) {
	c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
