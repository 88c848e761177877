package models

// BuildingStructure AI 도면 분석이 추출한 동별 구조
// DeadUnitLogic 예: "20층 이상 2호 세대 없음"
type BuildingStructure struct {
	Name          string `json:"name"`
	TotalFloors   int    `json:"totalFloors"`
	UnitsPerFloor int    `json:"unitsPerFloor"`
	DeadUnitLogic string `json:"deadUnitLogic,omitempty"`
}

// RiskFactor 위험 요소 평가 항목
type RiskFactor struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Detail   string  `json:"detail"`
}

// AnalysisResult 도면 분석 결과 (저장소의 싱글턴 레코드)
type AnalysisResult struct {
	SiteName           string              `json:"siteName"`
	ProjectCode        string              `json:"projectCode"`
	OverallSafetyScore float64             `json:"overallSafetyScore"`
	Summary            string              `json:"summary"`
	BuildingStructures []BuildingStructure `json:"buildingStructures"`
	RiskFactors        []RiskFactor        `json:"riskFactors"`
	ActionItems        []string            `json:"actionItems"`
}
