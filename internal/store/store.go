// Package store 는 공유 문서 저장소(동 단위 레코드, 채팅, 분석 결과 싱글턴)에
// 대한 접근을 추상화한다. 코어는 이 인터페이스만 알고,
// 실제 복제/영속 방식은 저장소 구현(Redis)에 맡긴다.
package store

import (
	"context"
	"errors"

	"sfcs-tracker/internal/models"
)

// ErrNotFound 요청한 레코드가 저장소에 없음
var ErrNotFound = errors.New("record not found")

// Snapshot 구독 스트림으로 전달되는 전체 동 목록
// Live 는 서버 왕복으로 받은 최신 데이터인지(true),
// 장애 후 폴링으로 읽은 것일 수 있는지(false)를 나타낸다.
type Snapshot struct {
	Buildings []models.Building
	Live      bool
}

// DocumentStore 공유 문서 저장소
type DocumentStore interface {
	// Subscribe 동 레코드 변경 스트림 구독
	// ctx 취소 시 채널이 닫히고 자원이 해제된다.
	Subscribe(ctx context.Context) (<-chan Snapshot, error)

	LoadBuildings(ctx context.Context) ([]models.Building, error)
	SaveBuilding(ctx context.Context, b models.Building) error
	// SaveAllBuildings 전체 레코드 일괄 교체 (클라이언트 관점에서 원자적)
	SaveAllBuildings(ctx context.Context, buildings []models.Building) error
	// InitializeIfEmpty 저장소가 비어 있을 때만 초기 트리 업로드
	InitializeIfEmpty(ctx context.Context, buildings []models.Building) (bool, error)

	SendChatMessage(ctx context.Context, msg models.ChatMessage) error
	// RecentChatMessages 최근 50개 메시지 (타임스탬프 오름차순)
	RecentChatMessages(ctx context.Context) ([]models.ChatMessage, error)
	ClearChatMessages(ctx context.Context) error

	SaveAnalysisResult(ctx context.Context, result *models.AnalysisResult) error
	LoadAnalysisResult(ctx context.Context) (*models.AnalysisResult, error)

	Close() error
}
