package workflow

import (
	"time"

	"sfcs-tracker/internal/models"
)

// Transition 단일 세대 상태 전이 결과
type Transition struct {
	From     models.ProcessStatus
	To       models.ProcessStatus
	IsRevert bool
}

// NextStatus 현재 상태/권한/기전 완료 여부에 따른 다음 상태 결정 (순수 함수)
// ok=false 는 허용된 전이가 없음을 뜻한다.
//
// 승격 권한(CapApprove):
//
//	미착수 -> 설치중 -> 승인요청 -> 승인완료 -> 타설중 -> 양생완료 -> 미착수(되돌리기)
//	단, 승인완료에서 타설중으로는 기전(MEP) 완료 시에만 진행한다.
//
// 기본 권한:
//
//	미착수 -> 설치중 -> 승인요청, 그리고 승인요청 -> 설치중 (본인 요청 취소)
func NextStatus(current models.ProcessStatus, caps CapabilitySet, mepCompleted bool) (next models.ProcessStatus, isRevert bool, ok bool) {
	if caps.Has(CapApprove) {
		switch current {
		case models.StatusApprovalReq:
			return models.StatusApproved, false, true
		case models.StatusApproved:
			if mepCompleted {
				return models.StatusPouring, false, true
			}
			// 기전 미완료 상태에서는 타설 진행 대신 기전 완료 처리가 다음 행동이다
			return current, false, false
		case models.StatusPouring:
			return models.StatusCured, false, true
		case models.StatusCured:
			return models.StatusNotStarted, true, true
		case models.StatusNotStarted:
			return models.StatusInstalling, false, true
		case models.StatusInstalling:
			return models.StatusApprovalReq, false, true
		}
		return current, false, false
	}

	if caps.Has(CapAdvance) {
		switch current {
		case models.StatusNotStarted:
			return models.StatusInstalling, false, true
		case models.StatusInstalling:
			return models.StatusApprovalReq, false, true
		case models.StatusApprovalReq:
			return models.StatusInstalling, true, true
		}
	}
	return current, false, false
}

// resetsMEP 해당 상태로 진입할 때 기전 완료 플래그를 초기화해야 하는지
// 이전 단계로 되돌아가면 기전 작업 의미가 사라지고,
// 승인완료 진입은 경로와 무관하게 항상 기전 작업을 새로 요구한다.
func resetsMEP(status models.ProcessStatus) bool {
	switch status {
	case models.StatusNotStarted, models.StatusInstalling, models.StatusApprovalReq, models.StatusApproved:
		return true
	}
	return false
}

// ApplyTransition 세대에 다음 전이 적용
// 죽은 세대는 어떤 경우에도 변경하지 않는다 (LastUpdated 포함).
// 전이가 없으면 changed=false 로 조용히 끝난다 (사용자 경계에서 에러가 되지 않음).
func ApplyTransition(unit *models.Unit, caps CapabilitySet, now time.Time) (Transition, bool) {
	if unit == nil || unit.IsDeadUnit {
		return Transition{}, false
	}
	next, isRevert, ok := NextStatus(unit.Status, caps, unit.MEPCompleted)
	if !ok || next == unit.Status {
		return Transition{}, false
	}
	tr := Transition{From: unit.Status, To: next, IsRevert: isRevert}
	unit.Status = next
	if resetsMEP(next) {
		unit.MEPCompleted = false
	}
	unit.LastUpdated = now
	return tr, true
}

// SetStatus 상태 직접 지정 (관리 모달 경로)
// 기본 권한은 미착수/설치중/승인요청까지만 지정할 수 있고
// 그 밖의 상태는 CapForceStatus 가 필요하다.
// 강제 경로로 승인완료에 진입해도 기전 초기화 규칙은 동일하게 적용된다.
func SetStatus(unit *models.Unit, target models.ProcessStatus, caps CapabilitySet, now time.Time) bool {
	if unit == nil || unit.IsDeadUnit || !target.Valid() {
		return false
	}
	if !caps.Has(CapForceStatus) {
		switch target {
		case models.StatusNotStarted, models.StatusInstalling, models.StatusApprovalReq:
			// 기본 권한 허용 범위
		default:
			return false
		}
		if !caps.Has(CapAdvance) {
			return false
		}
	}
	if unit.Status == target {
		return false
	}
	unit.Status = target
	if resetsMEP(target) {
		unit.MEPCompleted = false
	}
	unit.LastUpdated = now
	return true
}

// MarkMEPComplete 기전(전기/설비) 작업 완료 처리
// 승인완료/타설중/양생완료 상태에서만 의미가 있으며 중복 호출은 값 변화 없이 끝난다.
func MarkMEPComplete(unit *models.Unit, now time.Time) bool {
	if unit == nil || unit.IsDeadUnit {
		return false
	}
	switch unit.Status {
	case models.StatusApproved, models.StatusPouring, models.StatusCured:
	default:
		return false
	}
	if unit.MEPCompleted {
		return false
	}
	unit.MEPCompleted = true
	unit.LastUpdated = now
	return true
}

// PendingApproval 승인 대기 세대 (파생 데이터, 저장하지 않음)
type PendingApproval struct {
	BuildingID   string
	BuildingName string
	FloorLevel   int
	UnitID       string
	UnitNumber   string
}

// PendingApprovals 전체 트리에서 승인요청 상태 세대 수집
func PendingApprovals(buildings []models.Building) []PendingApproval {
	var list []PendingApproval
	for _, b := range buildings {
		for _, f := range b.Floors {
			for _, u := range f.Units {
				if u.Status == models.StatusApprovalReq {
					list = append(list, PendingApproval{
						BuildingID:   b.ID,
						BuildingName: b.Name,
						FloorLevel:   f.Level,
						UnitID:       u.ID,
						UnitNumber:   u.UnitNumber,
					})
				}
			}
		}
	}
	return list
}
