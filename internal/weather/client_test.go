package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConditionFromCode(t *testing.T) {
	assert.Equal(t, "맑음", ConditionFromCode(0))
	assert.Equal(t, "구름", ConditionFromCode(1))
	assert.Equal(t, "구름", ConditionFromCode(3))
	assert.Equal(t, "안개", ConditionFromCode(45))
	assert.Equal(t, "안개", ConditionFromCode(48))
	assert.Equal(t, "비", ConditionFromCode(51))
	assert.Equal(t, "비", ConditionFromCode(67))
	assert.Equal(t, "눈", ConditionFromCode(71))
	assert.Equal(t, "소나기", ConditionFromCode(80))
	assert.Equal(t, "뇌우", ConditionFromCode(95))
	assert.Equal(t, "뇌우", ConditionFromCode(99))
	// 매핑에 없는 코드는 맑음으로 처리
	assert.Equal(t, "맑음", ConditionFromCode(30))
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "37.2307", r.URL.Query().Get("latitude"))
		assert.Equal(t, "Asia/Seoul", r.URL.Query().Get("timezone"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current":{"temperature_2m":28.4,"wind_speed_10m":12.7,"weather_code":61}}`))
	}))
	defer server.Close()

	client := NewClient(37.2307, 127.2075, zap.NewNop())
	client.httpClient.SetBaseURL(server.URL)

	cur, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 28.4, cur.Temperature, 0.001)
	assert.InDelta(t, 12.7, cur.WindSpeed, 0.001)
	assert.Equal(t, "비", cur.Condition)
}

func TestFetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(37.2307, 127.2075, zap.NewNop())
	client.httpClient.SetBaseURL(server.URL)
	client.httpClient.SetRetryCount(0)

	_, err := client.Fetch(context.Background())
	assert.Error(t, err)
}
