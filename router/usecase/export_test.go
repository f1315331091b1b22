package usecase

import (
	"github.com/dolomite-exchange/zap-sidecar/domain"
)

func DedupPlans(plans []domain.ZapOutputParam) []domain.ZapOutputParam {
	return dedupPlans(plans)
}
