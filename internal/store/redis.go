package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"sfcs-tracker/internal/config"
	"sfcs-tracker/internal/models"
)

const (
	buildingsKey    = "sfcs:buildings"
	changedChannel  = "sfcs:buildings:changed"
	chatKey         = "sfcs:chat"
	analysisKey     = "sfcs:analysis"
	chatMessageCap  = 50
	subscribeBuffer = 8
)

// RedisStore Redis 기반 문서 저장소
// 동 레코드는 해시(필드=동 ID, 값=JSON)로, 변경 공지는 Pub/Sub 채널로,
// 채팅은 최근 50개로 잘리는 리스트로 유지한다.
type RedisStore struct {
	client  *redis.Client
	logger  *zap.Logger
	refresh time.Duration
}

// NewRedisStore Redis 저장소 생성 (연결 확인 포함)
func NewRedisStore(cfg *config.Config, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisStore{
		client:  client,
		logger:  logger,
		refresh: time.Duration(cfg.Tracker.RefreshInterval) * time.Second,
	}, nil
}

// Subscribe 변경 채널 구독 + 보조 폴링
// 채널 공지로 읽은 스냅샷은 Live=true, 장애 직후 폴링으로 읽은 것은 Live=false 로 표시한다.
func (s *RedisStore) Subscribe(ctx context.Context) (<-chan Snapshot, error) {
	pubsub := s.client.Subscribe(ctx, changedChannel)
	// 구독 확립 확인
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", changedChannel, err)
	}

	out := make(chan Snapshot, subscribeBuffer)
	go func() {
		defer close(out)
		defer pubsub.Close()

		ticker := time.NewTicker(s.refresh)
		defer ticker.Stop()

		live := true
		msgCh := pubsub.Channel()

		emit := func() {
			buildings, err := s.LoadBuildings(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Error("Failed to load buildings snapshot", zap.Error(err))
				}
				live = false
				return
			}
			select {
			case out <- Snapshot{Buildings: buildings, Live: live}:
			case <-ctx.Done():
			}
		}

		// 구독 직후 현재 상태 1회 전달
		emit()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgCh:
				if !ok {
					return
				}
				live = true
				emit()
			case <-ticker.C:
				emit()
			}
		}
	}()
	return out, nil
}

// LoadBuildings 전체 동 레코드 로드 (ID 오름차순)
func (s *RedisStore) LoadBuildings(ctx context.Context) ([]models.Building, error) {
	fields, err := s.client.HGetAll(ctx, buildingsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load buildings: %w", err)
	}
	buildings := make([]models.Building, 0, len(fields))
	for id, raw := range fields {
		var b models.Building
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			// 깨진 레코드 하나가 전체 동기화를 막지 않도록 건너뛴다
			s.logger.Warn("Skipping malformed building record",
				zap.String("building_id", id),
				zap.Error(err),
			)
			continue
		}
		buildings = append(buildings, b)
	}
	sort.Slice(buildings, func(i, j int) bool { return buildings[i].ID < buildings[j].ID })
	return buildings, nil
}

// SaveBuilding 동 레코드 통째로 기록 후 변경 공지
func (s *RedisStore) SaveBuilding(ctx context.Context, b models.Building) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal building %s: %w", b.ID, err)
	}
	if err := s.client.HSet(ctx, buildingsKey, b.ID, data).Err(); err != nil {
		return fmt.Errorf("failed to save building %s: %w", b.ID, err)
	}
	return s.publishChanged(ctx)
}

// SaveAllBuildings 전체 레코드 일괄 교체 (파이프라인)
func (s *RedisStore) SaveAllBuildings(ctx context.Context, buildings []models.Building) error {
	pipe := s.client.TxPipeline()
	for _, b := range buildings {
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to marshal building %s: %w", b.ID, err)
		}
		pipe.HSet(ctx, buildingsKey, b.ID, data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save buildings: %w", err)
	}
	return s.publishChanged(ctx)
}

// InitializeIfEmpty 저장소가 비어 있으면 초기 트리 업로드 (최초 1회성)
func (s *RedisStore) InitializeIfEmpty(ctx context.Context, buildings []models.Building) (bool, error) {
	count, err := s.client.HLen(ctx, buildingsKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check buildings: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if err := s.SaveAllBuildings(ctx, buildings); err != nil {
		return false, err
	}
	s.logger.Info("Initialized empty store with generated structure",
		zap.Int("building_count", len(buildings)),
	)
	return true, nil
}

// SendChatMessage 채팅 메시지 추가 (리스트를 최근 50개로 유지)
func (s *RedisStore) SendChatMessage(ctx context.Context, msg models.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal chat message: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, chatKey, data)
	pipe.LTrim(ctx, chatKey, -chatMessageCap, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to send chat message: %w", err)
	}
	return nil
}

// RecentChatMessages 최근 50개 메시지, 타임스탬프 오름차순
func (s *RedisStore) RecentChatMessages(ctx context.Context) ([]models.ChatMessage, error) {
	raws, err := s.client.LRange(ctx, chatKey, -chatMessageCap, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load chat messages: %w", err)
	}
	msgs := make([]models.ChatMessage, 0, len(raws))
	for _, raw := range raws {
		var m models.ChatMessage
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp < msgs[j].Timestamp })
	return msgs, nil
}

// ClearChatMessages 채팅 내역 전체 삭제
func (s *RedisStore) ClearChatMessages(ctx context.Context) error {
	if err := s.client.Del(ctx, chatKey).Err(); err != nil {
		return fmt.Errorf("failed to clear chat messages: %w", err)
	}
	return nil
}

// SaveAnalysisResult 분석 결과 싱글턴 기록
func (s *RedisStore) SaveAnalysisResult(ctx context.Context, result *models.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}
	if err := s.client.Set(ctx, analysisKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save analysis result: %w", err)
	}
	return nil
}

// LoadAnalysisResult 분석 결과 싱글턴 로드 (없으면 ErrNotFound)
func (s *RedisStore) LoadAnalysisResult(ctx context.Context) (*models.AnalysisResult, error) {
	raw, err := s.client.Get(ctx, analysisKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load analysis result: %w", err)
	}
	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis result: %w", err)
	}
	return &result, nil
}

// Close 연결 해제
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) publishChanged(ctx context.Context) error {
	if err := s.client.Publish(ctx, changedChannel, "updated").Err(); err != nil {
		// 공지 실패는 보조 폴링이 보완하므로 치명적이지 않다
		s.logger.Warn("Failed to publish change notification", zap.Error(err))
	}
	return nil
}
