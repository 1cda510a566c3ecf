package memory

import (
	"sort"

	"receivables/internal/domain"
)

func sortByMaturity(cs []domain.Claim) {
	sort.Slice(cs, func(i, j int) bool {
		if !cs[i].MaturityAt.Equal(cs[j].MaturityAt) {
			return cs[i].MaturityAt.Before(cs[j].MaturityAt)
		}
		return cs[i].ID < cs[j].ID
	})
}

func sortByExpiry(as []domain.Auction) {
	sort.Slice(as, func(i, j int) bool {
		if !as[i].ExpiresAt.Equal(as[j].ExpiresAt) {
			return as[i].ExpiresAt.Before(as[j].ExpiresAt)
		}
		return as[i].ID < as[j].ID
	})
}
