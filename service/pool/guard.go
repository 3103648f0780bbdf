package pool

import (
	"lending/core"
)

// enter takes the pool's execution lock without waiting. While an operation
// is in flight every other entry fails with ErrReentrantCall, whether it is
// nested inside that operation (a transfer collaborator calling back, with
// any context) or issued from another goroutine. Callers on other
// goroutines may retry once the running operation returns.
func (p *Pool) enter() (func(), error) {
	if !p.mu.TryLock() {
		return nil, core.ErrReentrantCall
	}

	return p.mu.Unlock, nil
}
