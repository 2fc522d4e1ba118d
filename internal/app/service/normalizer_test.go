package service

import (
	"testing"
	"time"

	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeListing(t *testing.T) {
	collectedAt := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	t.Run("Sale listing", func(t *testing.T) {
		raw := model.RawListing{
			AreaType:        "59A",
			ExclusiveArea:   59.8,
			TransactionType: model.TransactionSale,
			Price:           120000,
			Deposit:         99999, // 매매에서는 무시
			FloorLabel:      "10/15",
			Direction:       "남향",
		}

		listing, err := NormalizeListing(raw, "100001", model.UnitManwon, collectedAt)
		require.NoError(t, err)
		assert.Equal(t, "100001", listing.ComplexNo)
		assert.Equal(t, "59A", listing.AreaType)
		assert.Equal(t, int64(120000), listing.Price)
		assert.Equal(t, int64(0), listing.Deposit)
		assert.Equal(t, "10/15", listing.FloorLabel)
		assert.Equal(t, 10, listing.FloorTier)
		assert.Equal(t, collectedAt, listing.CollectedAt)
	})

	t.Run("Lease listing", func(t *testing.T) {
		raw := model.RawListing{
			ExclusiveArea:   59.8,
			TransactionType: model.TransactionLease,
			Deposit:         95000,
			FloorLabel:      "저",
		}

		listing, err := NormalizeListing(raw, "100001", model.UnitManwon, collectedAt)
		require.NoError(t, err)
		assert.Equal(t, int64(95000), listing.Deposit)
		assert.Equal(t, int64(0), listing.Price)
		assert.Equal(t, 3, listing.FloorTier)
	})

	t.Run("Won unit is scaled to manwon", func(t *testing.T) {
		raw := model.RawListing{
			ExclusiveArea:   59.8,
			TransactionType: model.TransactionSale,
			Price:           1_200_000_000, // 12억 원
		}

		listing, err := NormalizeListing(raw, "100001", model.UnitWon, collectedAt)
		require.NoError(t, err)
		assert.Equal(t, int64(120000), listing.Price)
	})

	t.Run("Missing tag falls back to magnitude heuristic", func(t *testing.T) {
		big := model.RawListing{
			ExclusiveArea:   59.8,
			TransactionType: model.TransactionSale,
			Price:           1_200_000_000,
		}
		listing, err := NormalizeListing(big, "100001", "", collectedAt)
		require.NoError(t, err)
		assert.Equal(t, int64(120000), listing.Price)

		small := model.RawListing{
			ExclusiveArea:   59.8,
			TransactionType: model.TransactionSale,
			Price:           120000,
		}
		listing, err = NormalizeListing(small, "100001", "", collectedAt)
		require.NoError(t, err)
		assert.Equal(t, int64(120000), listing.Price)
	})

	t.Run("Area type derived from exclusive area", func(t *testing.T) {
		tests := []struct {
			area float64
			want string
		}{
			{area: 59.8, want: "59A"},
			{area: 74.2, want: "75A"},
			{area: 84.9, want: "84A"},
		}
		for _, tt := range tests {
			raw := model.RawListing{
				ExclusiveArea:   tt.area,
				TransactionType: model.TransactionSale,
				Price:           100000,
			}
			listing, err := NormalizeListing(raw, "100001", model.UnitManwon, collectedAt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, listing.AreaType)
		}
	})

	t.Run("Invalid area", func(t *testing.T) {
		raw := model.RawListing{
			ExclusiveArea:   0,
			TransactionType: model.TransactionSale,
			Price:           100000,
		}
		_, err := NormalizeListing(raw, "100001", model.UnitManwon, collectedAt)
		assert.ErrorIs(t, err, ErrInvalidArea)
	})

	t.Run("Invalid transaction type", func(t *testing.T) {
		raw := model.RawListing{
			ExclusiveArea:   59.8,
			TransactionType: "RENT",
			Price:           100000,
		}
		_, err := NormalizeListing(raw, "100001", model.UnitManwon, collectedAt)
		assert.ErrorIs(t, err, ErrInvalidTransactionType)
	})
}
