// Command mockapi runs the offline marketplace backend the console can
// be pointed at during development and demos.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dukaworks/console/internal/mockapi"
	"github.com/dukaworks/console/pkg/cryptox"
	"github.com/dukaworks/console/pkg/mockdata"
	"github.com/dukaworks/console/pkg/slogx"
)

func main() {
	port := 8091
	if v := os.Getenv("MOCKAPI_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	logger := slogx.New(slogx.Config{
		Service: "duka-mockapi",
		Version: "dev",
		Env:     "dev",
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
	})

	if pepper := os.Getenv("MOCKAPI_PEPPER_FILE"); pepper != "" {
		cryptox.SetPepperPath(pepper)
	}

	secret := os.Getenv("MOCKAPI_SIGNING_SECRET")
	if secret == "" {
		// Fresh secret per run; tokens do not survive a restart, which is
		// fine for a dev backend.
		secret = cryptox.MustGenerateToken(cryptox.TokenSize256)
	}

	accounts, err := mockapi.SeedAccounts()
	if err != nil {
		log.Fatalf("failed to seed accounts: %v", err)
	}

	router := mockapi.NewRouter([]byte(secret), accounts, mockdata.NewProvider(), logger)
	router.ApplyRoutes()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("mockapi starting", "port", port)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			_ = server.Close()
		}
	}
}
