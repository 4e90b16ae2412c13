package main

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func loggingUnaryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		logger.Debug("→ " + info.FullMethod)

		resp, err := handler(ctx, req)

		duration := time.Since(start)
		if err != nil {
			logger.Warn("✗ "+info.FullMethod+" failed", "duration", duration, "code", status.Code(err).String(), "error", err)
		} else {
			logger.Info("✓ "+info.FullMethod+" completed", "duration", duration)
		}
		return resp, err
	}
}

func loggingStreamInterceptor(logger *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		logger.Info("⟷ " + info.FullMethod + " stream started")
		err := handler(srv, stream)

		if err != nil {
			logger.Warn("✗ "+info.FullMethod+" stream ended with error", "code", status.Code(err).String(), "error", err)
		} else {
			logger.Info("✓ " + info.FullMethod + " stream completed")
		}
		return err
	}
}
