package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sfcs-tracker/internal/analysis"
	"sfcs-tracker/internal/config"
	"sfcs-tracker/internal/logger"
	"sfcs-tracker/internal/models"
	"sfcs-tracker/internal/relay"
	"sfcs-tracker/internal/service"
	"sfcs-tracker/internal/store"
	"sfcs-tracker/internal/weather"
)

func main() {
	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 로거 초기화
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "sfcs-tracker")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting sfcs-tracker service",
		zap.String("site_name", cfg.Site.Name),
		zap.String("project_code", cfg.Site.ProjectCode),
	)

	// 문서 저장소 연결
	st, err := store.NewRedisStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to document store", zap.Error(err))
	}

	// 공지 릴레이 (브로커 미설정 시 무동작)
	var rl relay.Relay = relay.NopRelay{}
	if cfg.MQTT.Broker != "" {
		mq, err := relay.NewMQTTRelay(cfg, log)
		if err != nil {
			log.Error("Failed to connect to MQTT broker, notifications disabled", zap.Error(err))
		} else {
			rl = mq
		}
	}

	// 추적 서비스 생성
	svc, err := service.NewTrackerService(cfg, st, rl, log)
	if err != nil {
		log.Fatal("Failed to create tracker service", zap.Error(err))
	}
	svc.SetAlertSink(func(alert models.SystemAlert) {
		log.Info("Site alert", zap.String("title", alert.Title), zap.String("body", alert.Body))
	})

	// 도면 분석 서비스 (엔드포인트 미설정 시 비활성)
	if cfg.Analysis.BaseURL != "" {
		svc.SetAnalysisClient(analysis.NewClient(cfg.Analysis.BaseURL, cfg.Analysis.APIKey, log))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 현장 기상 주기 조회
	go watchWeather(ctx, cfg, log)

	// 시스템 신호 대기
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 서비스 시작 (goroutine)
	errChan := make(chan error, 1)
	go func() {
		if err := svc.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// 신호 또는 오류 대기
	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	case err := <-errChan:
		log.Error("Service error", zap.Error(err))
		cancel()
	}

	// 서비스 종료
	if err := svc.Stop(ctx); err != nil {
		log.Error("Error stopping service", zap.Error(err))
	}

	log.Info("Service stopped")
}

// watchWeather 현장 기상 상태 주기 조회 (1시간 간격)
func watchWeather(ctx context.Context, cfg *config.Config, log *zap.Logger) {
	client := weather.NewClient(cfg.Site.Latitude, cfg.Site.Longitude, log)

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		cur, err := client.Fetch(ctx)
		if err != nil {
			log.Warn("Failed to fetch site weather", zap.Error(err))
		} else {
			log.Info("Site weather",
				zap.Float64("temperature_c", cur.Temperature),
				zap.Float64("wind_speed_kmh", cur.WindSpeed),
				zap.String("condition", cur.Condition),
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
