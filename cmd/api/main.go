package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trip-planner/internal/api"
	"trip-planner/internal/config"
	"trip-planner/internal/modules/editor"
	"trip-planner/internal/remote"
	"trip-planner/internal/state"
	"trip-planner/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	// 1. --- Configuration ---
	// Load application configuration from app.env and the environment:
	// server port, remote itinerary service, session secret, log level.
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.Level())

	if cfg.JWTSecret == "" {
		// Only reachable in dev mode; config validation requires a secret otherwise.
		secret, err := utils.GenerateSecureToken(32)
		if err != nil {
			log.Fatalf("Failed to generate session secret: %v", err)
		}
		cfg.JWTSecret = secret
		token, err := utils.IssueSessionToken(cfg.JWTSecret, "dev", 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to issue dev session token: %v", err)
		}
		log.Infof("Dev session token (24h): %s", token)
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.Level())

	// 2. --- Middleware ---
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	allowOrigins := []string{"http://localhost:5173"}
	if cfg.ClientOrigin != "" {
		allowOrigins = append(allowOrigins, cfg.ClientOrigin)
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// 3. --- Dependency Injection (Wiring everything up) ---
	remoteLogger := log.New("remote")
	remoteLogger.SetLevel(cfg.Level())
	remoteClient := remote.NewClient(cfg.RemoteBaseURL, cfg.RemoteToken, remote.WithLogger(remoteLogger))

	store := state.NewStore()
	defer store.Close()
	stateLogger := log.New("state")
	stateLogger.SetLevel(cfg.Level())
	store.SetLogger(stateLogger)

	editorService := editor.NewService(remoteClient, store)
	editorLogger := log.New("editor")
	editorLogger.SetLevel(cfg.Level())
	editorService.SetLogger(editorLogger)
	editorHandler := editor.NewHandler(editorService, cfg.ClientOrigin)

	// 4. --- Initialize Router ---
	api.SetupRoutes(e, cfg.JWTSecret, editorHandler)

	// 5. --- Start Server with graceful shutdown logic ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server an error occurred:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal("Server forced to shutdown:", err)
	}
	log.Info("Server exiting")
}
