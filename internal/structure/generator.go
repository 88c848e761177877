package structure

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"sfcs-tracker/internal/models"
)

// DeadRule 죽은 세대 규칙: [MinFloor, MaxFloor] 구간의 Units 위치는 세대가 존재하지 않음
type DeadRule struct {
	MinFloor int   `json:"min"`
	MaxFloor int   `json:"max"`
	Units    []int `json:"units"`
}

// BuildingConfig 동별 정적 배치 설정
type BuildingConfig struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Floors        int        `json:"floors"`
	UnitsPerFloor int        `json:"unitsPerFloor"`
	Dead          []DeadRule `json:"dead,omitempty"`
}

// IsDead 규칙 집합에 대한 죽은 세대 판정
func IsDead(rules []DeadRule, floor, position int) bool {
	for _, rule := range rules {
		if floor < rule.MinFloor || floor > rule.MaxFloor {
			continue
		}
		for _, u := range rule.Units {
			if u == position {
				return true
			}
		}
	}
	return false
}

// UnitNumber 호수 표기: 층 뒤에 0을 붙이고 위치를 잇는다 (1층 1호 -> "101", 23층 4호 -> "2304")
func UnitNumber(floor, position int) string {
	return fmt.Sprintf("%d0%d", floor, position)
}

// Generate 설정으로부터 전체 동/층/세대 트리 생성
// 동일한 설정이면 생성 시각을 제외하고 항상 동일한 트리가 나온다.
// 죽은 세대는 양생완료(제외 상태)로 고정되고 이후 어떤 연산에서도 변하지 않는다.
func Generate(configs []BuildingConfig, now time.Time) []models.Building {
	buildings := make([]models.Building, 0, len(configs))
	for _, cfg := range configs {
		b := models.Building{
			ID:          "b-" + cfg.ID,
			Name:        cfg.Name,
			TotalFloors: cfg.Floors,
			Floors:      make([]models.Floor, 0, cfg.Floors),
		}
		for floor := 1; floor <= cfg.Floors; floor++ {
			f := models.Floor{
				Level: floor,
				Units: make([]models.Unit, 0, cfg.UnitsPerFloor),
			}
			for pos := 1; pos <= cfg.UnitsPerFloor; pos++ {
				dead := IsDead(cfg.Dead, floor, pos)
				status := models.StatusNotStarted
				if dead {
					status = models.StatusCured
				}
				f.Units = append(f.Units, models.Unit{
					ID:           fmt.Sprintf("%s-%d-%d", cfg.Name, floor, pos),
					UnitNumber:   UnitNumber(floor, pos),
					Status:       status,
					LastUpdated:  now,
					MEPCompleted: false,
					IsDeadUnit:   dead,
				})
			}
			b.Floors = append(b.Floors, f)
		}
		buildings = append(buildings, b)
	}
	return buildings
}

// FromStructures AI 분석 결과(BuildingStructure)로부터 트리 생성
// deadUnitLogic 이 패턴과 맞지 않으면 해당 동은 죽은 세대 없이 생성된다 (fail-open).
func FromStructures(structures []models.BuildingStructure, now time.Time) []models.Building {
	buildings := make([]models.Building, 0, len(structures))
	for idx, s := range structures {
		rules := RulesFromLogic(s.DeadUnitLogic, s.TotalFloors)
		cfg := BuildingConfig{
			ID:            fmt.Sprintf("%d", idx),
			Name:          s.Name,
			Floors:        s.TotalFloors,
			UnitsPerFloor: s.UnitsPerFloor,
			Dead:          rules,
		}
		generated := Generate([]BuildingConfig{cfg}, now)
		b := generated[0]
		// 원본 시스템과 동일하게 AI 생성 동은 b-<순번> ID 를 사용
		b.ID = fmt.Sprintf("b-%d", idx)
		buildings = append(buildings, b)
	}
	return buildings
}

// LoadConfigFile JSON 배치 파일 로드, path 가 비어 있으면 기본 현장 배치 반환
func LoadConfigFile(path string) ([]BuildingConfig, error) {
	if path == "" {
		return DefaultSite(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read buildings file: %w", err)
	}
	var configs []BuildingConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("failed to parse buildings file: %w", err)
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("buildings file %s contains no buildings", path)
	}
	return configs, nil
}
