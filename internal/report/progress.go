// Package report 는 현장 공정 현황을 Excel 보고서로 내보낸다.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"sfcs-tracker/internal/models"
)

// ProgressHeader 공정 현황 시트 표두
var ProgressHeader = []string{
	"동",
	"총 세대",
	"미착수",
	"설치중",
	"승인요청",
	"승인완료",
	"타설중",
	"양생완료",
	"기전완료",
	"진행률(%)",
}

// BuildingProgress 동별 집계 (죽은 세대는 모든 분모/분자에서 제외)
type BuildingProgress struct {
	Name         string
	TotalUnits   int
	StatusCounts map[models.ProcessStatus]int
	MEPCompleted int
	DeadUnits    int
}

// Summarize 동별 공정 집계 계산
func Summarize(buildings []models.Building) []BuildingProgress {
	out := make([]BuildingProgress, 0, len(buildings))
	for _, b := range buildings {
		p := BuildingProgress{
			Name:         b.Name,
			StatusCounts: make(map[models.ProcessStatus]int),
		}
		for _, f := range b.Floors {
			for _, u := range f.Units {
				if u.IsDeadUnit {
					p.DeadUnits++
					continue
				}
				p.TotalUnits++
				p.StatusCounts[u.Status]++
				if u.MEPCompleted {
					p.MEPCompleted++
				}
			}
		}
		out = append(out, p)
	}
	return out
}

// CompletionRate 진행률: 양생완료 세대 비율
func (p BuildingProgress) CompletionRate() float64 {
	if p.TotalUnits == 0 {
		return 0
	}
	return float64(p.StatusCounts[models.StatusCured]) / float64(p.TotalUnits) * 100
}

// GenerateProgressReport 공정 현황 Excel 파일 생성
func GenerateProgressReport(siteName string, buildings []models.Building, now time.Time) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "공정 현황"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// 1행: 현장명 + 생성 시각
	title := fmt.Sprintf("%s 공정 현황 (%s)", siteName, now.Format("2006-01-02 15:04"))
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write title: %w", err)
	}

	// 2행: 표두
	for col, header := range ProgressHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}

	// 3행 이후: 동별 집계
	for row, p := range Summarize(buildings) {
		values := []interface{}{
			p.Name,
			p.TotalUnits,
			p.StatusCounts[models.StatusNotStarted],
			p.StatusCounts[models.StatusInstalling],
			p.StatusCounts[models.StatusApprovalReq],
			p.StatusCounts[models.StatusApproved],
			p.StatusCounts[models.StatusPouring],
			p.StatusCounts[models.StatusCured],
			p.MEPCompleted,
			fmt.Sprintf("%.1f", p.CompletionRate()),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+3)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
