package catalog

import (
	"fmt"
	"time"
)

// SettlePolicy controls how long a page is given to hydrate after
// navigation. The default navigates, settles, then reloads once and settles
// again, since content keeps rendering after the network goes idle.
type SettlePolicy struct {
	NavigateTimeout time.Duration
	InitialSettle   time.Duration
	Reloads         int
	ReloadSettle    time.Duration
}

func DefaultSettlePolicy() SettlePolicy {
	return SettlePolicy{
		NavigateTimeout: 30 * time.Second,
		InitialSettle:   10 * time.Second,
		Reloads:         1,
		ReloadSettle:    5 * time.Second,
	}
}

func (p SettlePolicy) Validate() error {
	if p.NavigateTimeout <= 0 {
		return fmt.Errorf("navigate timeout must be > 0")
	}
	if p.InitialSettle < 0 || p.ReloadSettle < 0 {
		return fmt.Errorf("settle delays must be >= 0")
	}
	if p.Reloads < 0 {
		return fmt.Errorf("reloads must be >= 0")
	}
	return nil
}
