package config

import (
	"os"
	"strconv"
)

// Config 현장 관제 서비스 설정
type Config struct {
	// 현장 기본 정보
	Site struct {
		Name        string
		ProjectCode string
		// 기상 조회용 좌표 (기본: 용인시 처인구 남동)
		Latitude  float64
		Longitude float64
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	MQTT struct {
		Broker   string
		ClientID string
		Username string
		Password string
		Topic    string
		QoS      byte
	}

	// 권한 모드 전환용 공유 코드 (보안 경계가 아닌 편의 장치)
	Auth struct {
		AdminCode   string
		CreatorCode string
	}

	Analysis struct {
		BaseURL string
		APIKey  string
	}

	Tracker struct {
		// 동 배치 설정 파일 경로 (비어 있으면 기본 현장 배치 사용)
		BuildingsFile string
		// 스냅샷 보조 폴링 간격(초), 구독 채널 유실 대비
		RefreshInterval int
		// 백업 파일 버전 문자열
		BackupVersion string
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 환경 변수에서 설정 로드
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Site.Name = getEnv("SFCS_SITE_NAME", "용인 푸르지오 원클러스터 2,3단지 현장")
	cfg.Site.ProjectCode = getEnv("SFCS_PROJECT_CODE", "PRJ-YG-2025-PREMIUM")
	cfg.Site.Latitude = getEnvFloat("SFCS_SITE_LAT", 37.2307)
	cfg.Site.Longitude = getEnvFloat("SFCS_SITE_LON", 127.2075)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0
	if db := getEnv("REDIS_DB", ""); db != "" {
		if v, err := strconv.Atoi(db); err == nil {
			cfg.Redis.DB = v
		}
	}

	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "sfcs-tracker")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "sfcs/site/notifications")
	cfg.MQTT.QoS = 1

	cfg.Auth.AdminCode = getEnv("SFCS_ADMIN_CODE", "1234")
	cfg.Auth.CreatorCode = getEnv("SFCS_CREATOR_CODE", "3690")

	cfg.Analysis.BaseURL = getEnv("ANALYSIS_BASE_URL", "")
	cfg.Analysis.APIKey = getEnv("ANALYSIS_API_KEY", "")

	cfg.Tracker.BuildingsFile = getEnv("SFCS_BUILDINGS_FILE", "")
	cfg.Tracker.RefreshInterval = 30
	if v, err := strconv.Atoi(getEnv("SFCS_REFRESH_INTERVAL", "30")); err == nil && v > 0 {
		cfg.Tracker.RefreshInterval = v
	}
	cfg.Tracker.BackupVersion = getEnv("SFCS_BACKUP_VERSION", "3.2")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return defaultValue
}
