package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"go.uber.org/zap"

	"FibServer/config"
	"FibServer/internal/handler"
	"FibServer/internal/middleware"
	"FibServer/internal/router"
	"FibServer/internal/service"
	"FibServer/pkg/logger"
	"FibServer/pkg/otel"
)

func main() {
	// 日志部分
	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	// 遥测管线必须先于 HTTP server 就绪，失败直接退出而不是半初始化地继续跑
	providers, err := otel.Install(ctx, otel.Config{
		ServiceName:     config.Cfg.ServiceName,
		ServiceVersion:  config.Cfg.ServiceVersion,
		Environment:     config.Cfg.Environment,
		OTLPEndpoint:    config.Cfg.OTLPEndpoint,
		Insecure:        config.Cfg.OTLPInsecure,
		SampleRatio:     config.Cfg.TracingSampler,
		MetricsInterval: time.Duration(config.Cfg.MetricsInterval) * time.Second,
	})
	if err != nil {
		logger.Logger.Fatal("Failed to initialize telemetry providers", zap.Error(err))
	}

	if err := middleware.InitMetrics(providers.MeterProvider.Meter(config.Cfg.ServiceName)); err != nil {
		logger.Logger.Fatal("Failed to initialize HTTP metrics", zap.Error(err))
	}

	fibService, err := service.NewFibonacciService(providers.TracerProvider, providers.MeterProvider)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize fibonacci service", zap.Error(err))
	}

	logger.Logger.Info("Server starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("port", config.Cfg.ServerPort),
		zap.String("environment", config.Cfg.Environment),
	)

	addr := net.JoinHostPort(config.Cfg.ServerHost, config.Cfg.ServerPort)
	serverTracer, tracingMW := middleware.NewServerTracerConfig()
	h := server.Default(server.WithHostPorts(addr), serverTracer)

	router.Register(h, tracingMW, handler.NewFibonacci(fibService))

	// 优雅关闭：在单独的 goroutine 中监听关闭信号并调用 Shutdown
	go func() {
		<-ctx.Done()
		logger.Logger.Info("Initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	logger.Logger.Info("HTTP server listening", zap.String("addr", addr))

	h.Spin()

	// server 已停止接收并排空在途请求，此时才刷新并关闭遥测管线
	flushCtx, cancelFlush := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelFlush()

	if err := providers.Shutdown(flushCtx); err != nil {
		logger.Logger.Error("Failed to flush telemetry providers", zap.Error(err))
	}

	logger.Logger.Info("Server shutting down gracefully")
}
