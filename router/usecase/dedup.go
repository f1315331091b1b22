package usecase

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"

	"github.com/dolomite-exchange/zap-sidecar/domain"
)

// planDigest is the structurally significant content of a plan. The
// original minimum output is an echo of the request and deliberately
// excluded from the hash.
type planDigest struct {
	MarketIdsPath  []uint64             `json:"market_ids_path"`
	AmountWeisPath []math.Int           `json:"amount_weis_path"`
	TraderParams   []domain.TraderParam `json:"trader_params"`
	MakerAccounts  []domain.AccountInfo `json:"maker_accounts"`
}

// dedupPlans collapses structurally identical plans, preserving the
// original order. The first occurrence wins, keeping the configured source
// order as the implicit preferred execution order.
func dedupPlans(plans []domain.ZapOutputParam) []domain.ZapOutputParam {
	seen := make(map[[sha256.Size]byte]struct{}, len(plans))

	result := make([]domain.ZapOutputParam, 0, len(plans))
	for _, plan := range plans {
		hash := hashPlan(plan)
		if _, ok := seen[hash]; ok {
			continue
		}

		seen[hash] = struct{}{}
		result = append(result, plan)
	}

	return result
}

func hashPlan(plan domain.ZapOutputParam) [sha256.Size]byte {
	encoded, err := json.Marshal(planDigest{
		MarketIdsPath:  plan.MarketIdsPath,
		AmountWeisPath: plan.AmountWeisPath,
		TraderParams:   plan.TraderParams,
		MakerAccounts:  plan.MakerAccounts,
	})
	if err != nil {
		// Plans are plain data; marshaling them cannot fail at runtime.
		panic(fmt.Sprintf("failed to hash zap plan: %s", err))
	}

	return sha256.Sum256(encoded)
}
