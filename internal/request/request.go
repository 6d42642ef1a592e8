// Package request defines the Request value that flows from a trace
// collaborator through Memory, Controller queues, and back out via
// callback -- the one type shared by every other internal package, so
// it lives on its own to keep the dependency graph acyclic.
package request

import "github.com/behrlich/go-dramsim/internal/devspec"

// Request is one memory access in flight.
type Request struct {
	Addr    uint64
	Type    devspec.RequestType
	AddrVec devspec.AddrVec

	Arrive int64
	Depart int64

	IsFirstCommand bool
	CoreID         int

	// Cmd pins the exact command a Refresh request issues (REF or
	// REFSB) -- refresh has no row-buffer decode chain to walk, so the
	// Controller issues Cmd directly instead of deriving it from
	// DeviceSpec.Translate the way Read/Write do.
	Cmd devspec.Command

	Callback func(*Request)
}

// Done invokes Callback if set.
func (r *Request) Done() {
	if r.Callback != nil {
		r.Callback(r)
	}
}
