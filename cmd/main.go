package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KotFed0t/daily_results_bot/config"
	"github.com/KotFed0t/daily_results_bot/internal/externalApi/cloudStorageApi/googleDriveApi"
	"github.com/KotFed0t/daily_results_bot/internal/externalApi/financeApi/fmpApi"
	"github.com/KotFed0t/daily_results_bot/internal/externalApi/messengerApi/telegramApi"
	"github.com/KotFed0t/daily_results_bot/internal/externalApi/socialApi/xApi"
	"github.com/KotFed0t/daily_results_bot/internal/externalApi/spreadsheetApi/googleSheetsApi"
	"github.com/KotFed0t/daily_results_bot/internal/reportGenerator/xslsxGenerator"
	"github.com/KotFed0t/daily_results_bot/internal/scheduler"
	"github.com/KotFed0t/daily_results_bot/internal/service/dailyResultsService"
	"github.com/KotFed0t/daily_results_bot/internal/transport/httpTransport"
	"github.com/KotFed0t/daily_results_bot/utils"
)

const (
	runModeOnce     = "once"
	runModeSchedule = "schedule"
	runModeHTTP     = "http"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publishers := []dailyResultsService.Publisher{xApi.New(cfg)}
	if cfg.Telegram.Token != "" {
		publishers = append(publishers, telegramApi.New(cfg))
	}

	dailyResultsSrv := dailyResultsService.New(
		dailyResultsService.Options{
			HoldingsRange:      cfg.GoogleSheets.Range,
			AllowMissingQuotes: cfg.AllowMissingQuotes,
		},
		googleSheetsApi.New(ctx, cfg),
		fmpApi.New(cfg),
		publishers...,
	)

	var googleCloudStorage *googleDriveApi.GoogleDriveApi
	if cfg.Report.Enabled {
		googleCloudStorage = googleDriveApi.New(ctx, cfg)
		dailyResultsSrv.WithReport(xslsxGenerator.New(), googleCloudStorage)
	}

	switch cfg.RunMode {
	case runModeOnce:
		result, err := dailyResultsSrv.HandleEvent(utils.CreateCtxWithRqID(ctx), nil)
		if err != nil {
			slog.Error("daily results run failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		fmt.Println(result)
	case runModeSchedule:
		sched := scheduler.New()
		sched.NewCrontabJob("post daily results", dailyResultsSrv.PostDailyResults, cfg.Jobs.PostResultsCrontab, false)
		if googleCloudStorage != nil {
			sched.NewIntervalJob("delete old reports", googleCloudStorage.DeleteOldFiles, cfg.Jobs.DeleteOldReportsInterval, true)
		}
		sched.Start()
		defer sched.Stop()

		waitInterrupt()
	case runModeHTTP:
		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler:           httpTransport.NewController(dailyResultsSrv).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			slog.Info("http trigger started", slog.Int("port", cfg.HTTP.Port))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("http server failed", slog.String("err", err.Error()))
				panic(err)
			}
		}()

		waitInterrupt()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("http server shutdown failed", slog.String("err", err.Error()))
		}
	default:
		slog.Error("unknown run mode", slog.String("runMode", cfg.RunMode))
		os.Exit(1)
	}
}

// Waiting interruption signal
func waitInterrupt() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
