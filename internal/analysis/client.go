// Package analysis 는 외부 도면 분석(생성형 AI) 서비스 클라이언트다.
// 분석 알고리즘 자체는 불투명한 외부 협력자이며,
// 이 클라이언트는 구조화된 결과를 받아오는 것까지만 책임진다.
// 호출 실패는 공정 상태에 영향을 주지 않는 안내 메시지로 끝난다.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"sfcs-tracker/internal/models"
)

// FileInput 업로드 파일 (base64 인코딩)
type FileInput struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

// analyzeRequest 분석 요청 본문
type analyzeRequest struct {
	Files []FileInput `json:"files"`
}

// suggestRequest 현장 요약 요청 본문
type suggestRequest struct {
	SiteName string `json:"siteName"`
}

// apiResponse 분석 서비스 응답 래퍼
type apiResponse struct {
	Status int             `json:"status"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
}

// Client 도면 분석 서비스 클라이언트
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient 분석 클라이언트 생성
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second). // 도면 분석은 오래 걸릴 수 있음
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// AnalyzeDrawings 도면/데이터 파일 분석 요청
// 반환되는 AnalysisResult 의 buildingStructures 는 구조 생성기의
// 대체 입력(FromStructures)으로 그대로 쓸 수 있다.
func (c *Client) AnalyzeDrawings(ctx context.Context, files []FileInput) (*models.AnalysisResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to analyze")
	}

	c.logger.Info("Requesting drawing analysis",
		zap.Int("file_count", len(files)),
	)

	var response apiResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(analyzeRequest{Files: files}).
		SetResult(&response).
		Post("/v1/analyze")
	if err != nil {
		return nil, fmt.Errorf("failed to call analysis service: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("analysis service returned HTTP %d", resp.StatusCode())
	}
	if response.Status != 0 {
		return nil, fmt.Errorf("analysis service error: %s (status: %d)", response.Msg, response.Status)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(response.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis result: %w", err)
	}

	c.logger.Info("Drawing analysis completed",
		zap.String("site_name", result.SiteName),
		zap.Int("building_count", len(result.BuildingStructures)),
	)
	return &result, nil
}

// SuggestSitePlan 현장명 기반 한 줄 공사 개요 요약
// 서비스 연결 실패 시 고정 안내 문구를 반환한다 (치명적이지 않음).
func (c *Client) SuggestSitePlan(ctx context.Context, siteName string) string {
	var response apiResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(suggestRequest{SiteName: siteName}).
		SetResult(&response).
		Post("/v1/suggest-site-plan")
	if err != nil || resp.IsError() || response.Status != 0 {
		return "AI 서비스를 연결할 수 없습니다."
	}

	var summary string
	if err := json.Unmarshal(response.Data, &summary); err != nil {
		return "AI 서비스를 연결할 수 없습니다."
	}
	return summary
}
