package dramsim

import (
	"github.com/behrlich/go-dramsim/internal/devspec"
	"github.com/behrlich/go-dramsim/internal/request"
)

// Request is one memory access submitted to Memory.Send. Aliased from
// internal/request so callers never need to import an internal
// package to build one.
type Request = request.Request

// RequestType classifies a Request as a read, write, refresh, or other
// (e.g. power-down) access.
type RequestType = devspec.RequestType

const (
	ReadReq    = devspec.ReadReq
	WriteReq   = devspec.WriteReq
	RefreshReq = devspec.RefreshReq
	OtherReq   = devspec.OtherReq
)
