package service

import (
	"sfcs-tracker/internal/models"
	"sfcs-tracker/internal/workflow"
)

// ResolveRole 공유 접속 코드로 권한 모드 결정
// 관리자/제작자 코드가 아니면 승격 없이 거부한다.
func (s *TrackerService) ResolveRole(code string) (models.UserRole, bool) {
	switch code {
	case s.config.Auth.CreatorCode:
		return models.RoleCreator, true
	case s.config.Auth.AdminCode:
		return models.RoleAdmin, true
	default:
		return "", false
	}
}

// CapabilitiesForCode 접속 코드를 곧바로 권한 집합으로 변환
// 코드가 일치하지 않으면 기본(작업자) 권한을 준다.
func (s *TrackerService) CapabilitiesForCode(code string) workflow.CapabilitySet {
	role, ok := s.ResolveRole(code)
	if !ok {
		return workflow.CapabilitiesFor(models.RoleWorker)
	}
	return workflow.CapabilitiesFor(role)
}
