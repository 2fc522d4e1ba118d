package service

import (
	"testing"
	"time"

	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/internal/app/repository"
	"github.com/jwlee/aptgap-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAggregateServiceTest(t *testing.T) (AggregateService, repository.ListingRepository, repository.SummaryRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	listingRepo := repository.NewListingRepository(testDB)
	summaryRepo := repository.NewSummaryRepository(testDB)
	return NewAggregateService(listingRepo, summaryRepo, time.UTC), listingRepo, summaryRepo
}

func TestAggregateService_AggregateDaily(t *testing.T) {
	aggregateService, listingRepo, summaryRepo := setupAggregateServiceTest(t)

	collectedAt := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	listings := []model.Listing{
		{ComplexNo: "100001", AreaType: "59A", ExclusiveArea: 59.8, TransactionType: model.TransactionSale, Price: 120000, CollectedAt: collectedAt},
		{ComplexNo: "100001", AreaType: "59A", ExclusiveArea: 59.8, TransactionType: model.TransactionSale, Price: 126000, CollectedAt: collectedAt},
		{ComplexNo: "100001", AreaType: "59A", ExclusiveArea: 59.8, TransactionType: model.TransactionLease, Deposit: 95000, CollectedAt: collectedAt},
		{ComplexNo: "100001", AreaType: "59A", ExclusiveArea: 59.8, TransactionType: model.TransactionLease, Deposit: 100000, CollectedAt: collectedAt},
		{ComplexNo: "100001", AreaType: "84A", ExclusiveArea: 84.9, TransactionType: model.TransactionSale, Price: 150000, CollectedAt: collectedAt},
	}
	require.NoError(t, listingRepo.ReplaceListings("100001", listings))

	summaries, err := aggregateService.AggregateDaily("100001", collectedAt)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	recordDate := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	s59, err := summaryRepo.FindByKey("100001", "59A", recordDate)
	require.NoError(t, err)
	require.NotNil(t, s59)

	assert.Equal(t, 2, s59.SaleCount)
	require.NotNil(t, s59.SaleMinPrice)
	assert.Equal(t, int64(120000), *s59.SaleMinPrice)
	require.NotNil(t, s59.SaleMaxPrice)
	assert.Equal(t, int64(126000), *s59.SaleMaxPrice)
	require.NotNil(t, s59.SaleAvgPrice)
	assert.Equal(t, int64(123000), *s59.SaleAvgPrice)

	assert.Equal(t, 2, s59.LeaseCount)
	require.NotNil(t, s59.LeaseMaxPrice)
	assert.Equal(t, int64(100000), *s59.LeaseMaxPrice)

	// 갭 = 매매 최저가 - 전세 최고가
	require.NotNil(t, s59.GapInvestment)
	assert.Equal(t, int64(20000), *s59.GapInvestment)

	// 전세가율 = 전세 평균 / 매매 평균 (소수 1자리)
	require.NotNil(t, s59.LeaseRatio)
	assert.InDelta(t, 79.3, *s59.LeaseRatio, 0.01)
}

func TestAggregateService_AggregateDaily_SaleOnly(t *testing.T) {
	aggregateService, listingRepo, summaryRepo := setupAggregateServiceTest(t)

	collectedAt := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	listings := []model.Listing{
		{ComplexNo: "100001", AreaType: "59A", ExclusiveArea: 59.8, TransactionType: model.TransactionSale, Price: 120000, CollectedAt: collectedAt},
	}
	require.NoError(t, listingRepo.ReplaceListings("100001", listings))

	_, err := aggregateService.AggregateDaily("100001", collectedAt)
	require.NoError(t, err)

	recordDate := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	summary, err := summaryRepo.FindByKey("100001", "59A", recordDate)
	require.NoError(t, err)
	require.NotNil(t, summary)

	// 전세가 없으면 전세 통계와 갭/전세가율은 null로 남는다
	assert.Equal(t, 0, summary.LeaseCount)
	assert.Nil(t, summary.LeaseMinPrice)
	assert.Nil(t, summary.GapInvestment)
	assert.Nil(t, summary.LeaseRatio)
}

func TestAggregateService_AggregateDaily_Rerun(t *testing.T) {
	aggregateService, listingRepo, summaryRepo := setupAggregateServiceTest(t)

	collectedAt := time.Now().UTC()
	first := []model.Listing{
		{ComplexNo: "100001", AreaType: "59A", ExclusiveArea: 59.8, TransactionType: model.TransactionSale, Price: 120000, CollectedAt: collectedAt},
	}
	require.NoError(t, listingRepo.ReplaceListings("100001", first))
	_, err := aggregateService.AggregateDaily("100001", collectedAt)
	require.NoError(t, err)

	// 같은 날 다시 수집되면 덮어쓴다
	second := []model.Listing{
		{ComplexNo: "100001", AreaType: "59A", ExclusiveArea: 59.8, TransactionType: model.TransactionSale, Price: 118000, CollectedAt: collectedAt},
	}
	require.NoError(t, listingRepo.ReplaceListings("100001", second))
	_, err = aggregateService.AggregateDaily("100001", collectedAt)
	require.NoError(t, err)

	history, err := summaryRepo.FindHistory("100001", "59A", 30, time.UTC)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].SaleMinPrice)
	assert.Equal(t, int64(118000), *history[0].SaleMinPrice)
}

func TestAggregateService_AggregateDaily_NoListings(t *testing.T) {
	aggregateService, _, _ := setupAggregateServiceTest(t)

	summaries, err := aggregateService.AggregateDaily("999999", time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
