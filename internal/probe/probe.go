package probe

import (
	"context"

	"github.com/sitewatch/sitewatch/internal/domain"
)

// Prober performs a single availability check of one site. Implementations
// never return an error; every failure mode is encoded in the result.
type Prober interface {
	Check(ctx context.Context, site domain.Site) domain.CheckResult
}
