// Package alert defines the observer contract for check outcomes and the
// built-in handler implementations.
package alert

import "github.com/sitewatch/sitewatch/internal/domain"

// Handler consumes check results. OnCheckComplete fires for every completed
// check; OnStatusChange fires only when a site's status differs from its
// previously recorded one, with prev being that prior status. Handlers are
// invoked in registration order and must not rely on each other's side
// effects; a misbehaving handler is isolated by the caller.
type Handler interface {
	OnCheckComplete(result domain.CheckResult)
	OnStatusChange(result domain.CheckResult, prev domain.Status)
}
