package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfcs-tracker/internal/models"
)

func elevatedCaps() CapabilitySet {
	return CapabilitiesFor(models.RoleAdmin)
}

func baseCaps() CapabilitySet {
	return CapabilitiesFor(models.RoleWorker)
}

func newUnit(status models.ProcessStatus) *models.Unit {
	return &models.Unit{
		ID:          "101동-3-1",
		UnitNumber:  "301",
		Status:      status,
		LastUpdated: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNextStatus_ElevatedFullCycle(t *testing.T) {
	caps := elevatedCaps()

	next, revert, ok := NextStatus(models.StatusNotStarted, caps, false)
	require.True(t, ok)
	assert.Equal(t, models.StatusInstalling, next)
	assert.False(t, revert)

	next, _, ok = NextStatus(models.StatusInstalling, caps, false)
	require.True(t, ok)
	assert.Equal(t, models.StatusApprovalReq, next)

	next, _, ok = NextStatus(models.StatusApprovalReq, caps, false)
	require.True(t, ok)
	assert.Equal(t, models.StatusApproved, next)

	next, _, ok = NextStatus(models.StatusPouring, caps, false)
	require.True(t, ok)
	assert.Equal(t, models.StatusCured, next)

	next, revert, ok = NextStatus(models.StatusCured, caps, false)
	require.True(t, ok)
	assert.Equal(t, models.StatusNotStarted, next)
	assert.True(t, revert)
}

func TestNextStatus_MEPGatesPouring(t *testing.T) {
	caps := elevatedCaps()

	// 기전 미완료면 타설 진행 불가 (전이 없음)
	_, _, ok := NextStatus(models.StatusApproved, caps, false)
	assert.False(t, ok)

	next, _, ok := NextStatus(models.StatusApproved, caps, true)
	require.True(t, ok)
	assert.Equal(t, models.StatusPouring, next)
}

func TestNextStatus_BaseRole(t *testing.T) {
	caps := baseCaps()

	next, _, ok := NextStatus(models.StatusNotStarted, caps, false)
	require.True(t, ok)
	assert.Equal(t, models.StatusInstalling, next)

	next, _, ok = NextStatus(models.StatusInstalling, caps, false)
	require.True(t, ok)
	assert.Equal(t, models.StatusApprovalReq, next)

	// 본인 요청 취소
	next, revert, ok := NextStatus(models.StatusApprovalReq, caps, false)
	require.True(t, ok)
	assert.Equal(t, models.StatusInstalling, next)
	assert.True(t, revert)

	// 승인 이후 단계는 기본 권한으로 건드릴 수 없음
	for _, status := range []models.ProcessStatus{models.StatusApproved, models.StatusPouring, models.StatusCured} {
		_, _, ok := NextStatus(status, caps, true)
		assert.False(t, ok, "base role must not advance from %s", status)
	}
}

func TestApplyTransition_ResetsMEPOnRevert(t *testing.T) {
	now := time.Now()

	// 양생완료 -> 미착수 되돌리기: 기전 플래그도 함께 초기화
	u := newUnit(models.StatusCured)
	u.MEPCompleted = true
	tr, changed := ApplyTransition(u, elevatedCaps(), now)
	require.True(t, changed)
	assert.Equal(t, models.StatusNotStarted, u.Status)
	assert.True(t, tr.IsRevert)
	assert.False(t, u.MEPCompleted)
	assert.Equal(t, now, u.LastUpdated)
}

func TestApplyTransition_MEPSurvivesPouringAndCuring(t *testing.T) {
	now := time.Now()

	u := newUnit(models.StatusApproved)
	u.MEPCompleted = true
	_, changed := ApplyTransition(u, elevatedCaps(), now)
	require.True(t, changed)
	assert.Equal(t, models.StatusPouring, u.Status)
	assert.True(t, u.MEPCompleted)

	_, changed = ApplyTransition(u, elevatedCaps(), now)
	require.True(t, changed)
	assert.Equal(t, models.StatusCured, u.Status)
	assert.True(t, u.MEPCompleted)
}

func TestApplyTransition_DeadUnitImmutable(t *testing.T) {
	before := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	u := &models.Unit{
		ID:          "101동-21-3",
		UnitNumber:  "2103",
		Status:      models.StatusCured,
		LastUpdated: before,
		IsDeadUnit:  true,
	}

	_, changed := ApplyTransition(u, elevatedCaps(), time.Now())
	assert.False(t, changed)
	assert.Equal(t, models.StatusCured, u.Status)
	assert.Equal(t, before, u.LastUpdated)

	assert.False(t, SetStatus(u, models.StatusInstalling, elevatedCaps(), time.Now()))
	assert.False(t, MarkMEPComplete(u, time.Now()))
	assert.Equal(t, before, u.LastUpdated)
}

func TestSetStatus_Permissions(t *testing.T) {
	now := time.Now()

	// 기본 권한: 초기 세 상태까지만 직접 지정 가능
	u := newUnit(models.StatusNotStarted)
	assert.True(t, SetStatus(u, models.StatusApprovalReq, baseCaps(), now))
	assert.Equal(t, models.StatusApprovalReq, u.Status)

	assert.False(t, SetStatus(u, models.StatusApproved, baseCaps(), now))
	assert.False(t, SetStatus(u, models.StatusPouring, baseCaps(), now))
	assert.Equal(t, models.StatusApprovalReq, u.Status)

	// 승격 권한은 전 구간 지정 가능
	assert.True(t, SetStatus(u, models.StatusPouring, elevatedCaps(), now))
	assert.Equal(t, models.StatusPouring, u.Status)

	// 동일 상태 재지정은 변경 아님
	assert.False(t, SetStatus(u, models.StatusPouring, elevatedCaps(), now))

	// 알 수 없는 상태 값 거부
	assert.False(t, SetStatus(u, models.ProcessStatus("검토중"), elevatedCaps(), now))
}

func TestSetStatus_ForcedApprovalResetsMEP(t *testing.T) {
	u := newUnit(models.StatusCured)
	u.MEPCompleted = true

	// 어떤 경로로든 승인완료 진입은 기전 작업을 새로 요구한다
	require.True(t, SetStatus(u, models.StatusApproved, elevatedCaps(), time.Now()))
	assert.False(t, u.MEPCompleted)
}

func TestMarkMEPComplete(t *testing.T) {
	now := time.Now()

	u := newUnit(models.StatusInstalling)
	assert.False(t, MarkMEPComplete(u, now), "MEP not meaningful before approval")

	u.Status = models.StatusApproved
	assert.True(t, MarkMEPComplete(u, now))
	assert.True(t, u.MEPCompleted)

	// 중복 호출은 값 변화 없음
	assert.False(t, MarkMEPComplete(u, now))
}

func TestPendingApprovals(t *testing.T) {
	buildings := []models.Building{
		{
			ID: "b-2001", Name: "2001동",
			Floors: []models.Floor{
				{Level: 1, Units: []models.Unit{
					{ID: "2001동-1-4", UnitNumber: "104", Status: models.StatusApprovalReq},
				}},
				{Level: 2, Units: []models.Unit{
					{ID: "2001동-2-1", UnitNumber: "201", Status: models.StatusInstalling},
					{ID: "2001동-2-2", UnitNumber: "202", Status: models.StatusApprovalReq},
				}},
			},
		},
	}

	pending := PendingApprovals(buildings)
	require.Len(t, pending, 2)
	assert.Equal(t, "104", pending[0].UnitNumber)
	assert.Equal(t, 1, pending[0].FloorLevel)
	assert.Equal(t, "2001동", pending[0].BuildingName)
	assert.Equal(t, "202", pending[1].UnitNumber)
}

func TestCapabilitiesFor(t *testing.T) {
	admin := CapabilitiesFor(models.RoleAdmin)
	assert.True(t, admin.Has(CapApprove))
	assert.True(t, admin.Has(CapForceStatus))
	assert.True(t, admin.Has(CapBackup))
	assert.False(t, admin.Has(CapBatch))

	creator := CapabilitiesFor(models.RoleCreator)
	assert.True(t, creator.Has(CapBatch))

	worker := CapabilitiesFor(models.RoleWorker)
	assert.True(t, worker.Has(CapAdvance))
	assert.False(t, worker.Has(CapApprove))
	assert.False(t, worker.Has(CapForceStatus))

	sub := CapabilitiesFor(models.RoleSubcontractor)
	assert.Equal(t, worker, sub)
}
