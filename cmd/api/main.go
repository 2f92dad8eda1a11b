package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/misssam/tutor-backend/internal/config"
	"github.com/misssam/tutor-backend/internal/handler"
	"github.com/misssam/tutor-backend/internal/service/ai"
	"github.com/misssam/tutor-backend/internal/service/conversation"
	"github.com/misssam/tutor-backend/internal/service/tutor"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	conversations := conversation.NewService()

	var completion *ai.Completion
	if cfg.AI.Enabled() {
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize chat model: %v", err)
			log.Println("continuing without completion support - check the ARK_* environment variables")
		} else {
			completion = ai.NewCompletion(chatModel, cfg.Tutor.CompletionTimeout, cfg.Tutor.CompletionRetries, cfg.Tutor.ReplyWordLimit)
			log.Println("completion client initialized successfully")
		}
	} else {
		log.Println("model credentials not configured, skipping completion support")
	}

	controller := tutor.New(conversations, completion, cfg.Tutor)
	router := handler.NewRouter(conversations, controller)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Miss Sam tutor backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
