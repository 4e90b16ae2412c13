package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"google.golang.org/grpc"
	"gorm.io/gorm"

	chatpb "prestevent/api/v1/chat"
	"prestevent/internal/common"
	"prestevent/internal/dbmysql"
	"prestevent/internal/di"
)

const shutdownTimeout = 15 * time.Second

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize chat service: %w", err)
	}
	defer cleanup()
	logger := app.Logger

	if err := dbmysql.Migrate(app.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("✅ Database migration completed")

	grpcServer := newGRPCServer(app)
	lis, err := net.Listen("tcp", net.JoinHostPort(cfg.Server.Host, cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.Server.GRPCPort, err)
	}

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:           newRouter(app),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		logger.Info("gRPC server listening", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down Chat Service...")
	case err = <-errCh:
		logger.Error("server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := httpServer.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("HTTP shutdown", "error", serr)
	}
	stopGRPC(shutdownCtx, grpcServer)
	logger.Info("Chat Service stopped")
	return err
}

// stopGRPC waits for in-flight calls, then cuts open streams once ctx expires.
func stopGRPC(ctx context.Context, s *grpc.Server) {
	done := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.Stop()
	}
}

// newGRPCServer registers only the chat service. Reflection is left off: the service is
// described by a hand-written ServiceDesc over the JSON codec, so there are no file
// descriptors to advertise.
func newGRPCServer(app *di.App) *grpc.Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			loggingUnaryInterceptor(app.Logger),
			app.Tokens.UnaryAuthInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			loggingStreamInterceptor(app.Logger),
			app.Tokens.StreamAuthInterceptor(),
		),
	)
	chatpb.RegisterChatServiceServer(s, app.ChatHandler)
	return s
}

func newRouter(app *di.App) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler(app.DB)).Methods(http.MethodGet)

	app.UserHandler.RegisterRoutes(r, app.Tokens.RequireAuth)
	app.ListingHandler.RegisterRoutes(r, app.Tokens.RequireAuth)
	app.MediaServer.RegisterRoutes(r, app.Tokens.RequireAuth)
	r.Handle("/ws/conversations/{id}", app.Tokens.RequireAuth(app.WSHandler)).Methods(http.MethodGet)
	return r
}

func healthHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			common.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		common.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func runMigrate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, cleanup, err := di.InitializeDatabase(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := dbmysql.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("✅ Database migration completed")
	return nil
}
