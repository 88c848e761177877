package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfcs-tracker/internal/models"
)

func batchFixture() []models.Building {
	old := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	return []models.Building{
		{
			ID: "b-2001", Name: "2001동",
			Floors: []models.Floor{
				{Level: 1, Units: []models.Unit{
					{ID: "2001동-1-1", UnitNumber: "101", Status: models.StatusCured, LastUpdated: old, IsDeadUnit: true},
					{ID: "2001동-1-2", UnitNumber: "102", Status: models.StatusPouring, MEPCompleted: true, LastUpdated: old},
					{ID: "2001동-1-3", UnitNumber: "103", Status: models.StatusNotStarted, LastUpdated: old},
				}},
			},
		},
	}
}

func TestApplyBatch_ResetClearsMEP(t *testing.T) {
	buildings := batchFixture()
	now := time.Now()

	changed := ApplyBatch(buildings, OpReset, now)
	assert.Equal(t, 1, changed, "only the in-progress unit changes")

	units := buildings[0].Floors[0].Units
	assert.Equal(t, models.StatusNotStarted, units[1].Status)
	assert.False(t, units[1].MEPCompleted)
	assert.Equal(t, now, units[1].LastUpdated)
	// 이미 미착수였던 세대는 타임스탬프도 그대로
	assert.NotEqual(t, now, units[2].LastUpdated)
}

func TestApplyBatch_DeadUnitsSkipped(t *testing.T) {
	buildings := batchFixture()
	old := buildings[0].Floors[0].Units[0].LastUpdated

	for _, op := range []BatchOp{OpReset, OpForceInstall, OpForceRequest, OpForceApprove, OpForceMEP} {
		ApplyBatch(buildings, op, time.Now())
		dead := buildings[0].Floors[0].Units[0]
		require.True(t, dead.IsDeadUnit)
		assert.Equal(t, models.StatusCured, dead.Status, "op %s must not touch dead units", op)
		assert.Equal(t, old, dead.LastUpdated, "op %s must not touch dead unit timestamp", op)
	}
}

func TestApplyBatch_ForceApproveKeepsMEP(t *testing.T) {
	buildings := batchFixture()

	// 일괄 강제 승인은 개별 전이 규칙과 달리 기전 플래그를 유지한다
	ApplyBatch(buildings, OpForceApprove, time.Now())
	units := buildings[0].Floors[0].Units
	assert.Equal(t, models.StatusApproved, units[1].Status)
	assert.True(t, units[1].MEPCompleted)
	assert.Equal(t, models.StatusApproved, units[2].Status)
	assert.False(t, units[2].MEPCompleted)
}

func TestApplyBatch_ForceMEPOnlyAfterApproval(t *testing.T) {
	buildings := batchFixture()

	changed := ApplyBatch(buildings, OpForceMEP, time.Now())
	assert.Equal(t, 0, changed, "pouring unit already has MEP, not-started unit is too early")

	units := buildings[0].Floors[0].Units
	assert.False(t, units[2].MEPCompleted)

	units[2].Status = models.StatusApproved
	changed = ApplyBatch(buildings, OpForceMEP, time.Now())
	assert.Equal(t, 1, changed)
	assert.True(t, units[2].MEPCompleted)
}

func TestValidBatchOp(t *testing.T) {
	for _, op := range []BatchOp{OpReset, OpReinitialize, OpForceInstall, OpForceRequest, OpForceApprove, OpForceMEP} {
		assert.True(t, ValidBatchOp(op))
	}
	assert.False(t, ValidBatchOp(BatchOp("DELETE")))
	assert.False(t, ValidBatchOp(BatchOp("")))
}
