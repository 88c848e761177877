// Package weather 는 현장 좌표의 실시간 기상 조회 클라이언트다.
// 실패해도 공정 코어를 막거나 오염시키지 않는 독립 네트워크 호출이다.
package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Current 현재 기상 상태
type Current struct {
	Temperature float64 `json:"temp"`
	WindSpeed   float64 `json:"wind"`
	Condition   string  `json:"condition"`
}

// openMeteoResponse open-meteo current 응답 중 사용하는 부분
type openMeteoResponse struct {
	Current struct {
		Temperature2m float64 `json:"temperature_2m"`
		WindSpeed10m  float64 `json:"wind_speed_10m"`
		WeatherCode   int     `json:"weather_code"`
	} `json:"current"`
}

// Client open-meteo 기상 클라이언트
type Client struct {
	httpClient *resty.Client
	latitude   float64
	longitude  float64
	logger     *zap.Logger
}

// NewClient 기상 클라이언트 생성
func NewClient(latitude, longitude float64, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL("https://api.open-meteo.com").
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second)
	return &Client{
		httpClient: client,
		latitude:   latitude,
		longitude:  longitude,
		logger:     logger,
	}
}

// Fetch 현재 기상 조회
func (c *Client) Fetch(ctx context.Context) (*Current, error) {
	var response openMeteoResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":  fmt.Sprintf("%.4f", c.latitude),
			"longitude": fmt.Sprintf("%.4f", c.longitude),
			"current":   "temperature_2m,wind_speed_10m,weather_code",
			"timezone":  "Asia/Seoul",
		}).
		SetResult(&response).
		Get("/v1/forecast")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("weather service returned HTTP %d", resp.StatusCode())
	}

	return &Current{
		Temperature: response.Current.Temperature2m,
		WindSpeed:   response.Current.WindSpeed10m,
		Condition:   ConditionFromCode(response.Current.WeatherCode),
	}, nil
}

// ConditionFromCode WMO 기상 코드의 한국어 표기
func ConditionFromCode(code int) string {
	switch {
	case code == 0:
		return "맑음"
	case code >= 1 && code <= 3:
		return "구름"
	case code == 45 || code == 48:
		return "안개"
	case code >= 51 && code <= 67:
		return "비"
	case code >= 71 && code <= 77:
		return "눈"
	case code >= 80 && code <= 82:
		return "소나기"
	case code >= 95:
		return "뇌우"
	}
	return "맑음"
}
