package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAnalyzeDrawings_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/analyze", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req analyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Files, 1)
		assert.Equal(t, "application/pdf", req.Files[0].MimeType)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 0,
			"msg": "ok",
			"data": {
				"siteName": "신규 현장",
				"overallSafetyScore": 87.5,
				"buildingStructures": [
					{"name": "101동", "totalFloors": 15, "unitsPerFloor": 4, "deadUnitLogic": "14층 이상 4호 세대 없음"}
				],
				"riskFactors": [{"category": "타설", "score": 3.2, "detail": "동절기 양생 주의"}],
				"actionItems": ["양생 온도 관리 계획 수립"]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", zap.NewNop())

	result, err := client.AnalyzeDrawings(context.Background(), []FileInput{
		{Data: "ZHVtbXk=", MimeType: "application/pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, "신규 현장", result.SiteName)
	assert.InDelta(t, 87.5, result.OverallSafetyScore, 0.001)
	require.Len(t, result.BuildingStructures, 1)
	assert.Equal(t, "101동", result.BuildingStructures[0].Name)
	assert.Equal(t, 15, result.BuildingStructures[0].TotalFloors)
	require.Len(t, result.RiskFactors, 1)
	assert.Equal(t, "타설", result.RiskFactors[0].Category)
}

func TestAnalyzeDrawings_NoFiles(t *testing.T) {
	client := NewClient("http://localhost:1", "", zap.NewNop())
	_, err := client.AnalyzeDrawings(context.Background(), nil)
	assert.Error(t, err)
}

func TestAnalyzeDrawings_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": 1001, "msg": "unsupported file type"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", zap.NewNop())
	_, err := client.AnalyzeDrawings(context.Background(), []FileInput{{Data: "x", MimeType: "text/plain"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestSuggestSitePlan(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/suggest-site-plan", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": 0, "msg": "ok", "data": "골조 공정 중반, 타설 집중 구간입니다."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", zap.NewNop())
	summary := client.SuggestSitePlan(context.Background(), "용인 현장")
	assert.Equal(t, "골조 공정 중반, 타설 집중 구간입니다.", summary)
}

func TestSuggestSitePlan_FallbackOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", zap.NewNop())
	client.httpClient.SetRetryCount(0)

	summary := client.SuggestSitePlan(context.Background(), "용인 현장")
	assert.Equal(t, "AI 서비스를 연결할 수 없습니다.", summary)
}
