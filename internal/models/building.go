package models

import (
	"time"
)

// ProcessStatus 세대별 공정 상태 (골조 공사 생명주기)
// 저장소/백업 파일과의 호환을 위해 한국어 문자열 값을 그대로 사용한다.
type ProcessStatus string

const (
	StatusNotStarted  ProcessStatus = "미착수"
	StatusInstalling  ProcessStatus = "설치중"
	StatusApprovalReq ProcessStatus = "승인요청"
	StatusApproved    ProcessStatus = "승인완료"
	StatusPouring     ProcessStatus = "타설중"
	StatusCured       ProcessStatus = "양생완료"
)

// AllStatuses 공정 진행 순서대로 나열한 상태 목록
var AllStatuses = []ProcessStatus{
	StatusNotStarted,
	StatusInstalling,
	StatusApprovalReq,
	StatusApproved,
	StatusPouring,
	StatusCured,
}

// Valid 알려진 상태 값인지 확인
func (s ProcessStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// UserRole 사용자 권한 모드 (로컬 선택, 인증 경계 아님)
type UserRole string

const (
	RoleAdmin         UserRole = "관리자"
	RoleWorker        UserRole = "작업자"
	RoleSubcontractor UserRole = "협력사"
	RoleCreator       UserRole = "제작자"
)

// Unit 세대 (추적 단위 최소 엔티티)
// IsDeadUnit 은 생성 시 한 번만 결정되며 이후 어떤 변이 연산도 건드리지 않는다.
type Unit struct {
	ID           string        `json:"id"`
	UnitNumber   string        `json:"unitNumber"`
	Status       ProcessStatus `json:"status"`
	LastUpdated  time.Time     `json:"lastUpdated"`
	MEPCompleted bool          `json:"mepCompleted"`
	IsDeadUnit   bool          `json:"isDeadUnit,omitempty"`
}

// Floor 층 (1 = 최하층), 세대는 위치 순서대로 고정
type Floor struct {
	Level int    `json:"level"`
	Units []Unit `json:"units"`
}

// Building 동 (저장소에는 동 단위 레코드로 통째로 기록된다)
type Building struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	TotalFloors int     `json:"totalFloors"`
	Floors      []Floor `json:"floors"`
}

// FindFloor 층 번호로 층 검색 (없으면 nil)
func (b *Building) FindFloor(level int) *Floor {
	for i := range b.Floors {
		if b.Floors[i].Level == level {
			return &b.Floors[i]
		}
	}
	return nil
}

// FindUnit 세대 ID로 세대 검색 (없으면 nil)
func (f *Floor) FindUnit(id string) *Unit {
	for i := range f.Units {
		if f.Units[i].ID == id {
			return &f.Units[i]
		}
	}
	return nil
}

// CloneBuildings 전체 트리 깊은 복사
// 차분기(differ)가 보관하는 이전 스냅샷이 이후 변이에 오염되지 않도록 사용한다.
func CloneBuildings(buildings []Building) []Building {
	out := make([]Building, len(buildings))
	for i, b := range buildings {
		nb := b
		nb.Floors = make([]Floor, len(b.Floors))
		for j, f := range b.Floors {
			nf := f
			nf.Units = make([]Unit, len(f.Units))
			copy(nf.Units, f.Units)
			nb.Floors[j] = nf
		}
		out[i] = nb
	}
	return out
}
