package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sfcs-tracker/internal/analysis"
	"sfcs-tracker/internal/backup"
	"sfcs-tracker/internal/config"
	"sfcs-tracker/internal/differ"
	"sfcs-tracker/internal/models"
	"sfcs-tracker/internal/relay"
	"sfcs-tracker/internal/report"
	"sfcs-tracker/internal/store"
	"sfcs-tracker/internal/structure"
	"sfcs-tracker/internal/workflow"
)

// AlertSink 외부 경보 출력 (소리/시스템 알림 등)
// 싱크 내부 오류가 동기화를 막지 않도록 호출부가 격리한다.
type AlertSink func(alert models.SystemAlert)

// RetryPolicy 확정되지 못한 쓰기에 대한 후속 처리 훅
// 기본 구현은 아무것도 하지 않는다. 자동 재시도/롤백이 필요해지면
// 이 훅으로 주입한다 (세대별 pending 마커는 서비스가 관리한다).
type RetryPolicy interface {
	OnWriteFailure(unitID string, err error)
}

type noRetry struct{}

func (noRetry) OnWriteFailure(string, error) {}

// TrackerService 현장 공정 추적 서비스
// 저장소 스냅샷 구독, 차분/알림, 사용자 변이 진입점, 일괄 작업,
// 백업/복구를 한 곳에서 조정한다.
// 스냅샷은 한 번에 하나씩 처리되며 (차분 -> 알림 -> 기준 커밋),
// 처리 도중 다음 스냅샷을 겹쳐 받지 않는다.
type TrackerService struct {
	config *config.Config
	logger *zap.Logger
	store  store.DocumentStore
	relay  relay.Relay

	buildingConfigs []structure.BuildingConfig

	mu            sync.RWMutex
	buildings     []models.Building
	prev          []models.Building
	notifications []models.SystemNotification
	pendingWrites map[string]bool
	connected     bool
	connectionErr string
	siteName      string
	projectCode   string
	resetBaseline bool

	alertSink AlertSink
	retry     RetryPolicy
	analysis  *analysis.Client
}

// NewTrackerService 추적 서비스 생성
// 동 배치 설정을 로드하고 canonical 트리를 준비한다.
func NewTrackerService(cfg *config.Config, st store.DocumentStore, rl relay.Relay, logger *zap.Logger) (*TrackerService, error) {
	configs, err := structure.LoadConfigFile(cfg.Tracker.BuildingsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load building configs: %w", err)
	}

	s := &TrackerService{
		config:          cfg,
		logger:          logger,
		store:           st,
		relay:           rl,
		buildingConfigs: configs,
		pendingWrites:   make(map[string]bool),
		siteName:        cfg.Site.Name,
		projectCode:     cfg.Site.ProjectCode,
		retry:           noRetry{},
	}
	s.buildings = structure.Generate(configs, time.Now())
	return s, nil
}

// SetAlertSink 외부 경보 싱크 주입
func (s *TrackerService) SetAlertSink(sink AlertSink) {
	s.alertSink = sink
}

// SetRetryPolicy 쓰기 실패 훅 주입
func (s *TrackerService) SetRetryPolicy(p RetryPolicy) {
	if p != nil {
		s.retry = p
	}
}

// SetAnalysisClient 도면 분석 클라이언트 주입 (미설정 시 분석 기능 비활성)
func (s *TrackerService) SetAnalysisClient(c *analysis.Client) {
	s.analysis = c
}

// Start 서비스 시작 (ctx 취소까지 블로킹)
// 저장소가 비어 있으면 생성된 트리를 시드하고 변경 스트림을 구독한다.
// 구독이 끊기면 재구독하며, 재구독 후 첫 스냅샷은 차분 없이 새 기준이 된다.
func (s *TrackerService) Start(ctx context.Context) error {
	s.mu.RLock()
	initial := models.CloneBuildings(s.buildings)
	s.mu.RUnlock()

	if _, err := s.store.InitializeIfEmpty(ctx, initial); err != nil {
		// 시드 실패는 기존 데이터가 있다는 뜻일 수 있으므로 경고만 남기고 진행
		s.logger.Warn("Failed to seed initial structure", zap.Error(err))
	}

	// 기동 시 현장 공사 개요 한 줄 요약 (분석 서비스 미설정이면 생략)
	if s.analysis != nil {
		go func() {
			summary := s.analysis.SuggestSitePlan(ctx, s.config.Site.Name)
			s.logger.Info("Site plan summary", zap.String("summary", summary))
			s.AddNotification(summary, models.NotifyInfo)
		}()
	}

	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return nil
		}

		ch, err := s.store.Subscribe(ctx)
		if err != nil {
			s.markDisconnected(fmt.Sprintf("서버 연결 불가: 저장소 구독에 실패했습니다 (%v). 네트워크와 저장소 상태를 확인하세요.", err))
			s.logger.Error("Failed to subscribe to store", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			if backoff < maxBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second
		s.logger.Info("Subscribed to building snapshots")

		for snap := range ch {
			s.handleSnapshot(snap)
		}

		if ctx.Err() != nil {
			return nil
		}
		// 스트림 종료: 재구독하되, 끊겨 있던 동안의 변화를 소급 차분하지 않는다
		s.markDisconnected("서버 연결이 끊겼습니다. 재접속을 시도합니다.")
		s.mu.Lock()
		s.resetBaseline = true
		s.mu.Unlock()
	}
}

// Stop 자원 해제
func (s *TrackerService) Stop(ctx context.Context) error {
	s.relay.Close()
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

// handleSnapshot 수신 스냅샷 1건 처리
// 차분 결과와 무관하게 새 스냅샷을 먼저 기준으로 커밋한 뒤 알림을 내보낸다.
// 알림 싱크에서 무슨 일이 나도 기준 갱신은 이미 끝나 있다.
func (s *TrackerService) handleSnapshot(snap store.Snapshot) {
	if len(snap.Buildings) == 0 {
		return
	}

	s.mu.Lock()
	s.connected = snap.Live
	if snap.Live {
		s.connectionErr = ""
	}

	var changes []differ.Change
	if s.resetBaseline {
		s.resetBaseline = false
	} else {
		changes = differ.Diff(s.prev, snap.Buildings)
	}

	// 기준 무조건 커밋 (알림 실패가 스냅샷 갱신을 잃게 만들지 않는다)
	s.prev = models.CloneBuildings(snap.Buildings)
	s.buildings = snap.Buildings

	var batch []models.SystemNotification
	if len(changes) > 0 {
		batch = differ.Notifications(changes, time.Now())
		// 여러 변경의 알림은 하나의 배치로 한 번에 추가한다
		s.notifications = append(batch, s.notifications...)
	}
	s.mu.Unlock()

	if len(changes) == 0 {
		return
	}
	s.logger.Info("Detected unit status changes",
		zap.Int("change_count", len(changes)),
		zap.Int("notification_count", len(batch)),
	)

	s.emitAlerts(differ.Alerts(changes))
}

// emitAlerts 외부 경보 발사 (싱크 내부 panic 포함 격리)
func (s *TrackerService) emitAlerts(alerts []models.SystemAlert) {
	if s.alertSink == nil || len(alerts) == 0 {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Alert sink panicked", zap.Any("panic", r))
		}
	}()
	for _, a := range alerts {
		s.alertSink(a)
	}
}

// AdvanceUnit 세대 한 칸 진행 (원본 화면의 탭 동작)
// 승인완료 + 기전 미완료 세대는 상태 전이 대신 기전 완료 처리가 일어난다.
// 허용된 전이가 없으면 조용히 아무 일도 하지 않는다.
func (s *TrackerService) AdvanceUnit(ctx context.Context, buildingID string, floorLevel int, unitID string, caps workflow.CapabilitySet) (workflow.Transition, bool) {
	now := time.Now()

	s.mu.Lock()
	b, u := s.findUnitLocked(buildingID, floorLevel, unitID)
	if u == nil {
		s.mu.Unlock()
		return workflow.Transition{}, false
	}

	if u.Status == models.StatusApproved && !u.MEPCompleted {
		if workflow.MarkMEPComplete(u, now) {
			updated := *b
			s.mu.Unlock()
			s.persistBuilding(ctx, updated, unitID)
			return workflow.Transition{}, false
		}
		s.mu.Unlock()
		return workflow.Transition{}, false
	}

	tr, changed := workflow.ApplyTransition(u, caps, now)
	if !changed {
		s.mu.Unlock()
		return workflow.Transition{}, false
	}
	updated := *b
	buildingName := b.Name
	unitNumber := u.UnitNumber
	s.mu.Unlock()

	s.persistBuilding(ctx, updated, unitID)
	// 상태 변이 커밋 이후, 제어를 돌려주기 전에 공지를 발사한다
	s.notifyTransition(ctx, buildingName, floorLevel, unitNumber, tr.To)
	return tr, true
}

// SetUnitStatus 상태 직접 지정 (관리 모달 경로)
func (s *TrackerService) SetUnitStatus(ctx context.Context, buildingID string, floorLevel int, unitID string, target models.ProcessStatus, caps workflow.CapabilitySet) bool {
	now := time.Now()

	s.mu.Lock()
	b, u := s.findUnitLocked(buildingID, floorLevel, unitID)
	if u == nil || !workflow.SetStatus(u, target, caps, now) {
		s.mu.Unlock()
		return false
	}
	updated := *b
	buildingName := b.Name
	unitNumber := u.UnitNumber
	s.mu.Unlock()

	s.persistBuilding(ctx, updated, unitID)
	s.notifyTransition(ctx, buildingName, floorLevel, unitNumber, target)
	return true
}

// MarkMEP 기전 완료 처리
func (s *TrackerService) MarkMEP(ctx context.Context, buildingID string, floorLevel int, unitID string) bool {
	now := time.Now()

	s.mu.Lock()
	b, u := s.findUnitLocked(buildingID, floorLevel, unitID)
	if u == nil || !workflow.MarkMEPComplete(u, now) {
		s.mu.Unlock()
		return false
	}
	updated := *b
	s.mu.Unlock()

	s.persistBuilding(ctx, updated, unitID)
	return true
}

// ApplyBatch 일괄 작업 실행 (CapBatch 필요)
// 전체 초기화/재생성은 채팅 내역도 함께 비운다.
func (s *TrackerService) ApplyBatch(ctx context.Context, op workflow.BatchOp, caps workflow.CapabilitySet) error {
	if !caps.Has(workflow.CapBatch) {
		return fmt.Errorf("batch operation %s not permitted", op)
	}
	if !workflow.ValidBatchOp(op) {
		return fmt.Errorf("unknown batch operation: %s", op)
	}
	now := time.Now()

	if op == workflow.OpReset || op == workflow.OpReinitialize {
		if err := s.store.ClearChatMessages(ctx); err != nil {
			s.logger.Warn("Failed to clear chat messages", zap.Error(err))
		} else {
			s.AddNotification("채팅 내역이 초기화되었습니다.", models.NotifyInfo)
		}
	}

	if op == workflow.OpReinitialize {
		fresh := structure.Generate(s.buildingConfigs, now)
		s.mu.Lock()
		s.buildings = fresh
		snapshot := models.CloneBuildings(fresh)
		s.mu.Unlock()

		if err := s.store.SaveAllBuildings(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to save reinitialized structure: %w", err)
		}
		s.AddNotification("데이터베이스 구조가 초기 설정값으로 강제 동기화되었습니다.", models.NotifyWarning)
		s.logger.Info("Reinitialized structure from config",
			zap.Int("building_count", len(snapshot)),
		)
		return nil
	}

	s.mu.Lock()
	changed := workflow.ApplyBatch(s.buildings, op, now)
	snapshot := models.CloneBuildings(s.buildings)
	s.mu.Unlock()

	if err := s.store.SaveAllBuildings(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save batch result: %w", err)
	}
	s.AddNotification("일괄 상태 변경이 완료되었습니다.", models.NotifySuccess)
	s.logger.Info("Applied batch operation",
		zap.String("op", string(op)),
		zap.Int("changed_units", changed),
	)
	return nil
}

// Backup 현재 트리를 백업 파일 바이트로 직렬화 (CapBackup 필요)
func (s *TrackerService) Backup(caps workflow.CapabilitySet) ([]byte, error) {
	if !caps.Has(workflow.CapBackup) {
		return nil, fmt.Errorf("backup not permitted")
	}
	s.mu.RLock()
	buildings := models.CloneBuildings(s.buildings)
	siteName := s.siteName
	projectCode := s.projectCode
	s.mu.RUnlock()

	return backup.Serialize(buildings, siteName, projectCode, s.config.Tracker.BackupVersion, time.Now())
}

// ExportProgressReport 동별 공정 현황 Excel 보고서 생성 (CapBackup 필요)
func (s *TrackerService) ExportProgressReport(caps workflow.CapabilitySet) ([]byte, error) {
	if !caps.Has(workflow.CapBackup) {
		return nil, fmt.Errorf("report export not permitted")
	}
	s.mu.RLock()
	buildings := models.CloneBuildings(s.buildings)
	siteName := s.siteName
	s.mu.RUnlock()

	return report.GenerateProgressReport(siteName, buildings, time.Now())
}

// RestoreFromBackup 백업 병합 복구 (CapBackup 필요)
// 백업 검증 -> 현재 설정으로 canonical 재생성 -> 병합 -> 전체 저장 순서.
// 검증 실패 시 현재 트리는 건드리지 않는다.
func (s *TrackerService) RestoreFromBackup(ctx context.Context, data []byte, caps workflow.CapabilitySet) error {
	if !caps.Has(workflow.CapBackup) {
		return fmt.Errorf("restore not permitted")
	}
	bak, err := backup.Parse(data)
	if err != nil {
		return err
	}

	canonical := structure.Generate(s.buildingConfigs, time.Now())
	merged := backup.Merge(canonical, bak)

	s.mu.Lock()
	s.buildings = merged
	s.siteName = bak.SiteName
	if bak.ProjectCode != "" {
		s.projectCode = bak.ProjectCode
	}
	snapshot := models.CloneBuildings(merged)
	s.mu.Unlock()

	if err := s.store.SaveAllBuildings(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save restored structure: %w", err)
	}
	s.AddNotification("데이터 병합 및 복구가 완료되었습니다. (서버 동기화 포함)", models.NotifySuccess)
	s.logger.Info("Restored from backup",
		zap.Time("backup_timestamp", bak.Timestamp),
		zap.String("site_name", bak.SiteName),
	)
	return nil
}

// PendingApprovals 승인 대기 세대 목록 (주문형 스캔)
func (s *TrackerService) PendingApprovals() []workflow.PendingApproval {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return workflow.PendingApprovals(s.buildings)
}

// Buildings 현재 트리 복사본
func (s *TrackerService) Buildings() []models.Building {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneBuildings(s.buildings)
}

// Notifications 누적 알림 목록 복사본 (최신 우선)
func (s *TrackerService) Notifications() []models.SystemNotification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SystemNotification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// AddNotification 안내 알림 추가
func (s *TrackerService) AddNotification(message string, typ models.NotificationType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append([]models.SystemNotification{{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      typ,
		Timestamp: time.Now().Format(time.RFC3339),
		Read:      false,
	}}, s.notifications...)
}

// PendingWrites 확정되지 않은 쓰기가 남은 세대 ID 목록
func (s *TrackerService) PendingWrites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.pendingWrites))
	for id := range s.pendingWrites {
		ids = append(ids, id)
	}
	return ids
}

// ConnectionState 연결 상태와 사용자 안내 메시지
func (s *TrackerService) ConnectionState() (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected, s.connectionErr
}

// SiteInfo 현장명과 프로젝트 코드
func (s *TrackerService) SiteInfo() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siteName, s.projectCode
}

// persistBuilding 낙관적으로 반영된 동 레코드를 저장소에 기록
// 쓰기가 확정될 때까지 세대별 pending 마커를 유지하고,
// 실패 시 마커를 남긴 채 재시도 훅에 알린다 (로컬 상태는 되돌리지 않는다).
func (s *TrackerService) persistBuilding(ctx context.Context, b models.Building, unitID string) {
	s.mu.Lock()
	s.pendingWrites[unitID] = true
	s.mu.Unlock()

	if err := s.store.SaveBuilding(ctx, b); err != nil {
		s.logger.Error("Failed to persist building",
			zap.String("building_id", b.ID),
			zap.String("unit_id", unitID),
			zap.Error(err),
		)
		s.retry.OnWriteFailure(unitID, err)
		return
	}

	s.mu.Lock()
	delete(s.pendingWrites, unitID)
	s.mu.Unlock()
}

// notifyTransition 공지 대상 전이(승인요청/승인완료)에 대한 발신 메시지 전송
// 채팅 컬렉션과 외부 릴레이 양쪽으로 나가며, 실패는 로그로만 남는다.
func (s *TrackerService) notifyTransition(ctx context.Context, buildingName string, floorLevel int, unitNumber string, newStatus models.ProcessStatus) {
	var msg models.ChatMessage
	switch newStatus {
	case models.StatusApprovalReq:
		msg = models.ChatMessage{
			ID:         uuid.NewString(),
			Text:       fmt.Sprintf("📢 [승인요청] %s %d층 %s호 - 검측 요청합니다.", buildingName, floorLevel, unitNumber),
			UserRole:   models.RoleWorker,
			Timestamp:  time.Now().UnixMilli(),
			SenderName: "현장 알림",
		}
	case models.StatusApproved:
		msg = models.ChatMessage{
			ID:         uuid.NewString(),
			Text:       fmt.Sprintf("✅ [승인완료] %s %d층 %s호 - 승인 완료. 후속 공정 진행하세요.", buildingName, floorLevel, unitNumber),
			UserRole:   models.RoleAdmin,
			Timestamp:  time.Now().UnixMilli(),
			SenderName: "관리자 알림",
		}
	default:
		return
	}

	if err := s.store.SendChatMessage(ctx, msg); err != nil {
		s.logger.Warn("Failed to send chat notification", zap.Error(err))
	}
	if err := s.relay.Send(ctx, msg); err != nil {
		s.logger.Warn("Failed to relay notification", zap.Error(err))
	}
}

// findUnitLocked 동/층/세대 탐색 (호출자가 잠금 보유)
func (s *TrackerService) findUnitLocked(buildingID string, floorLevel int, unitID string) (*models.Building, *models.Unit) {
	for i := range s.buildings {
		if s.buildings[i].ID != buildingID {
			continue
		}
		b := &s.buildings[i]
		f := b.FindFloor(floorLevel)
		if f == nil {
			return nil, nil
		}
		return b, f.FindUnit(unitID)
	}
	return nil, nil
}

func (s *TrackerService) markDisconnected(msg string) {
	s.mu.Lock()
	s.connected = false
	s.connectionErr = msg
	s.mu.Unlock()
}
