// Package relay 는 상태 전이 공지를 외부로 내보내는 발신 전용 경로다.
// 전송 실패는 호출자 쪽에서 로그로만 남기며 공정 상태를 오염시키지 않는다.
package relay

import (
	"context"

	"sfcs-tracker/internal/models"
)

// Relay 발신 메시지 릴레이 (fire-and-forget)
type Relay interface {
	Send(ctx context.Context, msg models.ChatMessage) error
	Close()
}

// NopRelay 릴레이 미설정 환경용 (브로커 주소가 없을 때)
type NopRelay struct{}

func (NopRelay) Send(ctx context.Context, msg models.ChatMessage) error { return nil }
func (NopRelay) Close()                                                 {}
