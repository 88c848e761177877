// Package backup 은 전체 트리의 JSON 백업 생성과,
// 설정이 바뀌었을 수 있는 현재 구조 위로의 백업 병합을 담당한다.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sfcs-tracker/internal/models"
)

// ErrInvalidBackup 필수 필드가 빠진 백업 파일
var ErrInvalidBackup = errors.New("invalid backup file")

// File 백업 파일 최상위 구조 (버전 포함 JSON)
type File struct {
	Buildings   []models.Building `json:"buildings"`
	SiteName    string            `json:"siteName"`
	ProjectCode string            `json:"projectCode"`
	Timestamp   time.Time         `json:"timestamp"`
	Version     string            `json:"version"`
}

// Serialize 현재 트리를 백업 파일 바이트로 직렬화
func Serialize(buildings []models.Building, siteName, projectCode, version string, now time.Time) ([]byte, error) {
	f := File{
		Buildings:   buildings,
		SiteName:    siteName,
		ProjectCode: projectCode,
		Timestamp:   now,
		Version:     version,
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backup: %w", err)
	}
	return data, nil
}

// Parse 백업 파일 파싱 및 검증
// buildings 필드 혹은 siteName 이 없는 파일은 병합 전에 거부한다.
// 빈 배열은 유효하며, 병합은 canonical 을 그대로 유지하는 쪽으로 기운다.
func Parse(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse backup: %w", err)
	}
	if f.Buildings == nil || f.SiteName == "" {
		return nil, ErrInvalidBackup
	}
	return &f, nil
}

// Merge 현재 설정으로 새로 생성한 canonical 구조 위에 백업 상태를 병합
// 세대별로 status / mepCompleted / lastUpdated 만 백업에서 가져오고
// isDeadUnit / id / unitNumber 는 항상 canonical 값을 유지한다.
// canonical 에서 죽은 세대가 된 자리는 백업에 진행 중 상태가 남아 있어도 건드리지 않는다.
// 짝이 없는 동/층/세대는 canonical 그대로 남으므로 병합 자체는 실패하지 않는다.
func Merge(canonical []models.Building, bak *File) []models.Building {
	merged := models.CloneBuildings(canonical)

	bakByID := make(map[string]*models.Building, len(bak.Buildings))
	for i := range bak.Buildings {
		bakByID[bak.Buildings[i].ID] = &bak.Buildings[i]
	}

	for bi := range merged {
		bakB, ok := bakByID[merged[bi].ID]
		if !ok {
			continue
		}
		for fi := range merged[bi].Floors {
			baseF := &merged[bi].Floors[fi]
			bakF := bakB.FindFloor(baseF.Level)
			if bakF == nil {
				continue
			}
			for ui := range baseF.Units {
				baseU := &baseF.Units[ui]
				if baseU.IsDeadUnit {
					continue
				}
				bakU := bakF.FindUnit(baseU.ID)
				if bakU == nil {
					continue
				}
				baseU.Status = bakU.Status
				baseU.MEPCompleted = bakU.MEPCompleted
				baseU.LastUpdated = bakU.LastUpdated
			}
		}
	}
	return merged
}
