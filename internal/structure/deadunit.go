package structure

import (
	"regexp"
	"strconv"
	"strings"
)

// deadUnitPattern 도면 분석이 내놓는 규격 문구: "<N>층 이상 <호,호,...>호"
// 예: "25층 이상 5,6호 세대 없음"
var deadUnitPattern = regexp.MustCompile(`(\d+)층 이상 ([\d,]+)호`)

// ParseDeadUnitLogic 자연어 죽은 세대 문구 파싱
// 반환: 기준층(이상), 위치 목록, 매칭 여부.
// 패턴이 맞지 않으면 ok=false 를 반환하고 호출자는 죽은 세대 없이 진행한다 (fail-open).
func ParseDeadUnitLogic(logic string) (minFloor int, positions []int, ok bool) {
	if logic == "" {
		return 0, nil, false
	}
	match := deadUnitPattern.FindStringSubmatch(logic)
	if match == nil {
		return 0, nil, false
	}
	minFloor, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, nil, false
	}
	for _, part := range strings.Split(match[2], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pos, err := strconv.Atoi(part)
		if err != nil {
			return 0, nil, false
		}
		positions = append(positions, pos)
	}
	if len(positions) == 0 {
		return 0, nil, false
	}
	return minFloor, positions, true
}

// RulesFromLogic 문구를 구간 규칙으로 변환 (기준층부터 최상층까지)
func RulesFromLogic(logic string, totalFloors int) []DeadRule {
	minFloor, positions, ok := ParseDeadUnitLogic(logic)
	if !ok {
		return nil
	}
	return []DeadRule{{MinFloor: minFloor, MaxFloor: totalFloors, Units: positions}}
}
