// Package differ 는 수신한 전체 스냅샷을 직전 스냅샷과 비교해
// 알릴 가치가 있는 세대 상태 전이를 찾아낸다.
// 이전 스냅샷 보관과 커밋은 호출자(동기화 서비스)의 몫이며
// 여기의 함수들은 (이전, 신규) -> 알림 목록의 순수 함수다.
package differ

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"sfcs-tracker/internal/models"
)

// Change 감지된 세대 상태 변경
type Change struct {
	BuildingID   string
	BuildingName string
	FloorLevel   int
	UnitID       string
	UnitNumber   string
	From         models.ProcessStatus
	To           models.ProcessStatus
}

// Diff 두 스냅샷 비교
// 동은 ID, 층은 레벨, 세대는 ID 로 짝을 맞추고 양쪽 모두에 존재하는 세대만 본다.
// 한쪽에만 있는 동/층/세대(구조 변경)는 알림 대상이 아니다.
func Diff(prev, next []models.Building) []Change {
	if len(prev) == 0 {
		return nil
	}

	prevByID := make(map[string]*models.Building, len(prev))
	for i := range prev {
		prevByID[prev[i].ID] = &prev[i]
	}

	var changes []Change
	for ni := range next {
		newB := &next[ni]
		oldB, ok := prevByID[newB.ID]
		if !ok {
			continue
		}
		for fi := range newB.Floors {
			newF := &newB.Floors[fi]
			oldF := oldB.FindFloor(newF.Level)
			if oldF == nil {
				continue
			}
			for ui := range newF.Units {
				newU := &newF.Units[ui]
				oldU := oldF.FindUnit(newU.ID)
				if oldU == nil {
					continue
				}
				if newU.Status != oldU.Status {
					changes = append(changes, Change{
						BuildingID:   newB.ID,
						BuildingName: newB.Name,
						FloorLevel:   newF.Level,
						UnitID:       newU.ID,
						UnitNumber:   newU.UnitNumber,
						From:         oldU.Status,
						To:           newU.Status,
					})
				}
			}
		}
	}
	return changes
}

// Notifications 변경 목록 중 공지 대상 전이를 알림으로 변환
// 승인요청 진입은 warning, 승인완료 진입은 success, 그 외 전이는 공지하지 않는다.
// 한 스냅샷에서 발생한 여러 변경은 각각 자기 알림을 만들고 하나의 배치로 반환된다.
func Notifications(changes []Change, now time.Time) []models.SystemNotification {
	var batch []models.SystemNotification
	for _, c := range changes {
		switch c.To {
		case models.StatusApprovalReq:
			batch = append(batch, models.SystemNotification{
				ID:        uuid.NewString(),
				Message:   fmt.Sprintf("[승인요청] %s %d층 %s호", c.BuildingName, c.FloorLevel, c.UnitNumber),
				Type:      models.NotifyWarning,
				Timestamp: now.Format(time.RFC3339),
				Read:      false,
			})
		case models.StatusApproved:
			batch = append(batch, models.SystemNotification{
				ID:        uuid.NewString(),
				Message:   fmt.Sprintf("[승인완료] %s %d층 %s호", c.BuildingName, c.FloorLevel, c.UnitNumber),
				Type:      models.NotifySuccess,
				Timestamp: now.Format(time.RFC3339),
				Read:      false,
			})
		}
	}
	return batch
}

// Alerts 공지 대상 전이에 대한 외부 경보(소리/시스템 알림) 페이로드
func Alerts(changes []Change) []models.SystemAlert {
	var alerts []models.SystemAlert
	for _, c := range changes {
		switch c.To {
		case models.StatusApprovalReq:
			alerts = append(alerts, models.SystemAlert{
				Title: "SFCS 승인 요청 알림",
				Body:  fmt.Sprintf("%s %d층 %s호에서 검측 승인이 요청되었습니다.", c.BuildingName, c.FloorLevel, c.UnitNumber),
			})
		case models.StatusApproved:
			alerts = append(alerts, models.SystemAlert{
				Title: "SFCS 승인 완료",
				Body:  fmt.Sprintf("%s %d층 %s호가 승인되었습니다.", c.BuildingName, c.FloorLevel, c.UnitNumber),
			})
		}
	}
	return alerts
}
