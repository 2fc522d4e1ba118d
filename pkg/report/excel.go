package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/internal/app/service"
	"github.com/jwlee/aptgap-backend/pkg/pricefmt"
	"github.com/xuri/excelize/v2"
)

// WriteListingsXLSX 매물 목록을 XLSX로 기록
//
// 가격 컬럼은 억/만원 표기 문자열로 출력한다 (내부 저장은 만원 정수).
func WriteListingsXLSX(w io.Writer, complexName string, listings []model.Listing) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "매물"
	f.SetSheetName(f.GetSheetName(0), sheetName)

	headers := []string{"단지", "평형", "거래유형", "가격", "보증금", "층", "방향", "수집일"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	for i, listing := range listings {
		row := i + 2
		deposit := ""
		if listing.TransactionType == model.TransactionLease {
			deposit = pricefmt.Format(listing.Deposit)
		}
		values := []interface{}{
			complexName,
			listing.AreaType,
			string(listing.TransactionType),
			pricefmt.Format(listing.Price),
			deposit,
			listing.FloorLabel,
			listing.Direction,
			listing.CollectedAt.Format("2006-01-02"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write listings xlsx: %w", err)
	}
	return nil
}

// WriteSummariesXLSX 평형별 요약을 XLSX로 기록
func WriteSummariesXLSX(w io.Writer, complexName string, summaries map[string]service.AreaSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "요약"
	f.SetSheetName(f.GetSheetName(0), sheetName)

	headers := []string{"단지", "평형", "매매 최저가", "매매 건수", "전세 대표가", "전세 건수", "갭", "전세가율", "신호등"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	row := 2
	for _, areaType := range sortedAreaTypes(summaries) {
		summary := summaries[areaType]
		gap := "-"
		if summary.Gap > 0 {
			gap = pricefmt.Format(summary.Gap)
		}
		values := []interface{}{
			complexName,
			areaType,
			pricefmt.Format(summary.SaleMin),
			summary.SaleCount,
			pricefmt.Format(summary.LeaseRepr),
			summary.LeaseCount,
			gap,
			summary.LeaseRatio,
			string(summary.Signal.Color),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
		row++
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write summaries xlsx: %w", err)
	}
	return nil
}

func sortedAreaTypes(summaries map[string]service.AreaSummary) []string {
	keys := make([]string, 0, len(summaries))
	for k := range summaries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
