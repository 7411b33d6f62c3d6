// Command textstructd serves the analysis pipeline over gRPC.
package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/joseph-ayodele/text-structurer/internal/common"
	"github.com/joseph-ayodele/text-structurer/internal/export"
	"github.com/joseph-ayodele/text-structurer/internal/llm/workersai"
	"github.com/joseph-ayodele/text-structurer/internal/pipeline"
	"github.com/joseph-ayodele/text-structurer/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	addr := cfg.Server.GRPCAddr
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	if !cfg.LLM.HasCredentials() {
		logger.Warn("AI_ACCOUNT_ID or AI_API_TOKEN not set; every analysis will use the rule-based fallback")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := workersai.NewClient(workersai.ConfigFromCommon(cfg.LLM), logger)
	p, err := pipeline.New(pipeline.ConfigFrom(cfg), client, logger)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", addr, "error", err)
		os.Exit(1)
	}
	grpcServer := grpc.NewServer()

	server.RegisterAnalysisServer(grpcServer, server.NewAnalysisService(p, export.NewService(logger), logger))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(server.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	logger.Info("textstructd listening", "addr", addr, "model", cfg.LLM.Model)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	healthServer.Shutdown()

	done := make(chan struct{})
	go func() { grpcServer.GracefulStop(); close(done) }()
	select {
	case <-done:
	case <-time.After(cfg.Server.ShutdownTimeout):
		logger.Warn("graceful stop timed out; forcing")
		grpcServer.Stop()
	}
}
