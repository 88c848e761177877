package workflow

import (
	"sfcs-tracker/internal/models"
)

// Capability 변이 연산 권한
// 상태 기계는 호출자가 권한을 어떻게 얻었는지(공유 코드, 외부 인증 등) 알지 못하며
// 권한 집합만 보고 허용 여부를 판단한다.
type Capability string

const (
	// CapAdvance 기본 공정 보고: 착수/설치완료 보고와 본인 요청 취소
	CapAdvance Capability = "advance"
	// CapApprove 승인/타설/양생 진행과 완료 세대 되돌리기
	CapApprove Capability = "approve"
	// CapForceStatus 임의 상태 직접 지정 (관리 모달 경로)
	CapForceStatus Capability = "force-status"
	// CapBatch 전체 일괄 작업
	CapBatch Capability = "batch"
	// CapBackup 백업 생성/복구
	CapBackup Capability = "backup"
)

// CapabilitySet 권한 집합
type CapabilitySet map[Capability]bool

// Has 권한 보유 여부
func (s CapabilitySet) Has(c Capability) bool {
	return s[c]
}

// NewCapabilitySet 권한 집합 생성
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = true
	}
	return set
}

// CapabilitiesFor 역할별 권한 집합
// 관리자/제작자는 승격 역할, 나머지(작업자/협력사)는 기본 역할이다.
func CapabilitiesFor(role models.UserRole) CapabilitySet {
	switch role {
	case models.RoleAdmin:
		return NewCapabilitySet(CapAdvance, CapApprove, CapForceStatus, CapBackup)
	case models.RoleCreator:
		return NewCapabilitySet(CapAdvance, CapApprove, CapForceStatus, CapBackup, CapBatch)
	default:
		return NewCapabilitySet(CapAdvance)
	}
}
