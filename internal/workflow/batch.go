package workflow

import (
	"time"

	"sfcs-tracker/internal/models"
)

// BatchOp 일괄 작업 종류 (닫힌 집합)
type BatchOp string

const (
	// OpReset 모든 세대 미착수로 초기화 (기전 플래그 포함)
	OpReset BatchOp = "RESET"
	// OpReinitialize 설정값으로 트리 전체 재생성 (누적 상태 폐기, 복구 불가)
	OpReinitialize BatchOp = "REINIT"
	// OpForceInstall 모든 세대 설치중으로 강제 지정
	OpForceInstall BatchOp = "INSTALL"
	// OpForceRequest 모든 세대 승인요청으로 강제 지정
	OpForceRequest BatchOp = "REQ"
	// OpForceApprove 모든 세대 승인완료로 강제 지정
	OpForceApprove BatchOp = "APPROVE"
	// OpForceMEP 승인완료 이후 단계 세대의 기전 완료 일괄 처리
	OpForceMEP BatchOp = "MEP"
)

// ValidBatchOp 알려진 일괄 작업인지 확인
func ValidBatchOp(op BatchOp) bool {
	switch op {
	case OpReset, OpReinitialize, OpForceInstall, OpForceRequest, OpForceApprove, OpForceMEP:
		return true
	}
	return false
}

// ApplyBatch 전체 트리에 일괄 작업 적용
// 죽은 세대는 건너뛴다. 일괄 작업은 개별 전이 규칙을 의도적으로 우회하는
// 직접 필드 지정이므로, 강제 승인은 기전 플래그를 초기화하지 않는다.
// OpReinitialize 는 트리 재생성이 필요하므로 여기서 처리하지 않는다
// (서비스 계층이 구조 생성기를 다시 실행한다).
func ApplyBatch(buildings []models.Building, op BatchOp, now time.Time) int {
	changed := 0
	for bi := range buildings {
		for fi := range buildings[bi].Floors {
			units := buildings[bi].Floors[fi].Units
			for ui := range units {
				u := &units[ui]
				if u.IsDeadUnit {
					continue
				}
				switch op {
				case OpReset:
					if u.Status != models.StatusNotStarted || u.MEPCompleted {
						u.Status = models.StatusNotStarted
						u.MEPCompleted = false
						u.LastUpdated = now
						changed++
					}
				case OpForceInstall:
					if u.Status != models.StatusInstalling {
						u.Status = models.StatusInstalling
						u.LastUpdated = now
						changed++
					}
				case OpForceRequest:
					if u.Status != models.StatusApprovalReq {
						u.Status = models.StatusApprovalReq
						u.LastUpdated = now
						changed++
					}
				case OpForceApprove:
					if u.Status != models.StatusApproved {
						u.Status = models.StatusApproved
						u.LastUpdated = now
						changed++
					}
				case OpForceMEP:
					switch u.Status {
					case models.StatusApproved, models.StatusPouring, models.StatusCured:
						if !u.MEPCompleted {
							u.MEPCompleted = true
							u.LastUpdated = now
							changed++
						}
					}
				}
			}
		}
	}
	return changed
}
