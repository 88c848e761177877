package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sfcs-tracker/internal/analysis"
	"sfcs-tracker/internal/models"
	"sfcs-tracker/internal/structure"
	"sfcs-tracker/internal/workflow"
)

// RunAnalysis 도면 분석 요청 후 결과를 저장소에 보관
// 분석 클라이언트가 주입되지 않았으면 에러를 반환한다.
func (s *TrackerService) RunAnalysis(ctx context.Context, files []analysis.FileInput) (*models.AnalysisResult, error) {
	if s.analysis == nil {
		return nil, fmt.Errorf("analysis service not configured")
	}
	result, err := s.analysis.AnalyzeDrawings(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze drawings: %w", err)
	}

	if result.SiteName != "" {
		s.mu.Lock()
		s.siteName = result.SiteName
		s.mu.Unlock()
	}

	if err := s.store.SaveAnalysisResult(ctx, result); err != nil {
		s.logger.Warn("Failed to persist analysis result", zap.Error(err))
	}
	s.AddNotification("도면 분석이 완료되었습니다.", models.NotifySuccess)
	return result, nil
}

// ApplyAnalysisStructures 저장된 분석 결과의 동 구조로 전체 트리 재생성 (CapBatch 필요)
// 죽은 세대 규칙 문장은 해석 가능한 범위에서 반영된다.
func (s *TrackerService) ApplyAnalysisStructures(ctx context.Context, caps workflow.CapabilitySet) error {
	if !caps.Has(workflow.CapBatch) {
		return fmt.Errorf("structure replacement not permitted")
	}

	result, err := s.store.LoadAnalysisResult(ctx)
	if err != nil {
		return fmt.Errorf("failed to load analysis result: %w", err)
	}
	if len(result.BuildingStructures) == 0 {
		return fmt.Errorf("analysis result has no building structures")
	}

	fresh := structure.FromStructures(result.BuildingStructures, time.Now())

	s.mu.Lock()
	s.buildings = fresh
	if result.SiteName != "" {
		s.siteName = result.SiteName
	}
	snapshot := models.CloneBuildings(fresh)
	s.mu.Unlock()

	if err := s.store.SaveAllBuildings(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save analyzed structure: %w", err)
	}
	s.AddNotification("분석 결과의 동 구조가 적용되었습니다.", models.NotifyWarning)
	s.logger.Info("Applied analyzed building structures",
		zap.Int("building_count", len(snapshot)),
	)
	return nil
}
