package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv 실행 환경에 설정된 값이 기본값 검증을 깨지 않도록 전부 비운다
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"SFCS_SITE_NAME", "SFCS_PROJECT_CODE", "SFCS_SITE_LAT", "SFCS_SITE_LON",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"MQTT_BROKER", "MQTT_CLIENT_ID", "MQTT_USERNAME", "MQTT_PASSWORD", "MQTT_TOPIC",
		"SFCS_ADMIN_CODE", "SFCS_CREATOR_CODE",
		"ANALYSIS_BASE_URL", "ANALYSIS_API_KEY",
		"SFCS_BUILDINGS_FILE", "SFCS_REFRESH_INTERVAL", "SFCS_BACKUP_VERSION",
		"LOG_LEVEL", "LOG_FORMAT",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "용인 푸르지오 원클러스터 2,3단지 현장", cfg.Site.Name)
	assert.Equal(t, "PRJ-YG-2025-PREMIUM", cfg.Site.ProjectCode)
	assert.InDelta(t, 37.2307, cfg.Site.Latitude, 0.0001)
	assert.InDelta(t, 127.2075, cfg.Site.Longitude, 0.0001)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, "", cfg.MQTT.Broker)
	assert.Equal(t, "sfcs-tracker", cfg.MQTT.ClientID)
	assert.Equal(t, "sfcs/site/notifications", cfg.MQTT.Topic)
	assert.Equal(t, byte(1), cfg.MQTT.QoS)

	assert.Equal(t, "1234", cfg.Auth.AdminCode)
	assert.Equal(t, "3690", cfg.Auth.CreatorCode)

	assert.Equal(t, "", cfg.Tracker.BuildingsFile)
	assert.Equal(t, 30, cfg.Tracker.RefreshInterval)
	assert.Equal(t, "3.2", cfg.Tracker.BackupVersion)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SFCS_SITE_NAME", "테스트 현장")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SFCS_ADMIN_CODE", "9999")
	t.Setenv("SFCS_REFRESH_INTERVAL", "5")
	t.Setenv("SFCS_SITE_LAT", "35.1796")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "테스트 현장", cfg.Site.Name)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "9999", cfg.Auth.AdminCode)
	assert.Equal(t, 5, cfg.Tracker.RefreshInterval)
	assert.InDelta(t, 35.1796, cfg.Site.Latitude, 0.0001)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "abc")
	t.Setenv("SFCS_REFRESH_INTERVAL", "-1")
	t.Setenv("SFCS_SITE_LON", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 30, cfg.Tracker.RefreshInterval)
	assert.InDelta(t, 127.2075, cfg.Site.Longitude, 0.0001)
}
