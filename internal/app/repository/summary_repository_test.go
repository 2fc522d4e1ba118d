package repository

import (
	"testing"
	"time"

	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSummaryRepositoryTest(t *testing.T) SummaryRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	return NewSummaryRepository(testDB)
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestSummaryRepository_Upsert(t *testing.T) {
	repo := setupSummaryRepositoryTest(t)

	recordDate := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	summary := &model.DailySummary{
		ComplexNo:    "100001",
		AreaType:     "59A",
		RecordDate:   recordDate,
		SaleMinPrice: int64Ptr(120000),
		SaleCount:    2,
	}
	require.NoError(t, repo.Upsert(summary))

	// 같은 키로 다시 저장하면 덮어쓴다
	updated := &model.DailySummary{
		ComplexNo:    "100001",
		AreaType:     "59A",
		RecordDate:   recordDate,
		SaleMinPrice: int64Ptr(118000),
		SaleCount:    3,
	}
	require.NoError(t, repo.Upsert(updated))

	found, err := repo.FindByKey("100001", "59A", recordDate)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.SaleMinPrice)
	assert.Equal(t, int64(118000), *found.SaleMinPrice)
	assert.Equal(t, 3, found.SaleCount)

	// 다른 평형은 별도 행
	other := &model.DailySummary{
		ComplexNo:  "100001",
		AreaType:   "84A",
		RecordDate: recordDate,
		SaleCount:  1,
	}
	require.NoError(t, repo.Upsert(other))

	found84, err := repo.FindByKey("100001", "84A", recordDate)
	require.NoError(t, err)
	require.NotNil(t, found84)
	assert.Equal(t, 1, found84.SaleCount)
}

func TestSummaryRepository_FindByKey_NotFound(t *testing.T) {
	repo := setupSummaryRepositoryTest(t)

	found, err := repo.FindByKey("999999", "59A", time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSummaryRepository_FindHistory(t *testing.T) {
	repo := setupSummaryRepositoryTest(t)

	loc := time.UTC
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// 최근 3일 + 구간 밖 1건
	for _, offset := range []int{0, -1, -2, -40} {
		require.NoError(t, repo.Upsert(&model.DailySummary{
			ComplexNo:    "100001",
			AreaType:     "59A",
			RecordDate:   today.AddDate(0, 0, offset),
			SaleMinPrice: int64Ptr(120000 + int64(offset)*100),
		}))
	}

	history, err := repo.FindHistory("100001", "59A", 7, loc)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// record_date 오름차순
	assert.True(t, history[0].RecordDate.Before(history[1].RecordDate))
	assert.True(t, history[1].RecordDate.Before(history[2].RecordDate))

	// 평형 미지정이면 단지 전체
	require.NoError(t, repo.Upsert(&model.DailySummary{
		ComplexNo:  "100001",
		AreaType:   "84A",
		RecordDate: today,
	}))
	all, err := repo.FindHistory("100001", "", 7, loc)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
