package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"FibServer/pkg/errors"
)

const (
	tracerName  = "fibonacci_server"
	meterName   = "fibonacci_server_metric"
	counterName = "fibo_counter"

	// fib(90) = 2880067194370816120，仍在 int64 范围内
	// 上界 90 在校验层排除溢出，计算层不做运行时检查
	minN = 1
	maxN = 90
)

// requestTag 固定的关联属性，成功与失败都带同一个值（"attempted" 语义）
var requestTag = attribute.String("id", "1234")

// FibonacciService 负责带观测的斐波那契计算。
// tracer/counter 在构造时创建一次，Compute 可被任意多个请求并发调用。
type FibonacciService struct {
	tracer  trace.Tracer
	counter metric.Int64Counter
}

// NewFibonacciService 从注入的 provider 构造服务
// 测试可以注入内存 provider，不依赖全局状态
func NewFibonacciService(tp trace.TracerProvider, mp metric.MeterProvider) (*FibonacciService, error) {
	counter, err := mp.Meter(meterName).Int64Counter(
		counterName,
		metric.WithDescription("Total number of fibonacci requests attempted"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &FibonacciService{
		tracer:  tp.Tracer(tracerName),
		counter: counter,
	}, nil
}

// Compute 计算第 n 个斐波那契数
// 每次调用恰好产生一个 span（作为入站 ctx 的子 span）和一次计数
func (s *FibonacciService) Compute(ctx context.Context, n int64) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "fibonacci")
	defer span.End()
	defer func() {
		s.counter.Add(ctx, 1, metric.WithAttributes(requestTag))
	}()

	span.SetAttributes(attribute.Int64("fibonacci.n", n))

	if n < minN || n > maxN {
		span.SetStatus(codes.Error, errors.FibOutOfRange.Message)
		return 0, errors.FibOutOfRange
	}

	result := fib(n)
	span.SetAttributes(attribute.Int64("fibonacci.result", result))

	return result, nil
}

// fib 迭代计算，fib(1) = fib(2) = 1，调用方已把 n 限定在 [1,90]
func fib(n int64) int64 {
	result := int64(1)
	if n > 2 {
		var a, b int64 = 0, 1
		for i := int64(1); i < n; i++ {
			result = a + b
			a = b
			b = result
		}
	}

	return result
}
