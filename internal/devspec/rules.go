package devspec

// buildCommon registers the command set, command scopes, the
// request-type translation table, and the power-state precondition and
// effect tables shared by every standard. Row-buffer state transitions
// (ACT/PRE/RD/WR) are universal DRAM behavior and live in
// internal/hierarchy rather than in a per-standard table.
func buildCommon(spec *DeviceSpec, hasRefSB bool) {
	spec.Commands = []Command{ACT, PRE, PREA, RD, WR, RDA, WRA, REF, PDE, PDX, SRE, SRX}
	if hasRefSB {
		spec.Commands = append(spec.Commands, REFSB)
	}

	spec.CommandScope = map[Command]Level{
		ACT: spec.RowBufferAt,
		PRE: spec.RowBufferAt,
		RD:  spec.RowBufferAt,
		WR:  spec.RowBufferAt,
		RDA: spec.RowBufferAt,
		WRA: spec.RowBufferAt,

		PREA: Rank,
		REF:  Rank,
		PDE:  Rank,
		PDX:  Rank,
		SRE:  Rank,
		SRX:  Rank,
	}
	if hasRefSB {
		spec.CommandScope[REFSB] = Subarray
	}

	spec.Translate = map[RequestType]Command{
		ReadReq:    RD,
		WriteReq:   WR,
		RefreshReq: REF,
		OtherReq:   NoCommand,
	}

	// Power-state transitions, uniform across standards.
	spec.addPrecondition(Rank, PowerUp, PDE, true, NoCommand)
	spec.addPrecondition(Rank, ActPowerDown, PDE, false, NoCommand)
	spec.addPrecondition(Rank, PrePowerDown, PDE, false, NoCommand)
	spec.addPrecondition(Rank, ActPowerDown, PDX, true, NoCommand)
	spec.addPrecondition(Rank, PrePowerDown, PDX, true, NoCommand)
	spec.addPrecondition(Rank, PowerUp, SRE, true, NoCommand)
	spec.addPrecondition(Rank, SelfRefresh, SRE, false, NoCommand)
	spec.addPrecondition(Rank, SelfRefresh, SRX, true, NoCommand)
	spec.addPrecondition(Rank, PowerUp, SRX, false, NoCommand)

	spec.addEffect(Rank, PowerUp, PDE, ActPowerDown)
	spec.addEffect(Rank, ActPowerDown, PDX, PowerUp)
	spec.addEffect(Rank, PrePowerDown, PDX, PowerUp)
	spec.addEffect(Rank, PowerUp, SRE, SelfRefresh)
	spec.addEffect(Rank, SelfRefresh, SRX, PowerUp)

	t := spec.Timing
	rb := spec.RowBufferAt

	// Same-bank (or same-subarray) timing.
	spec.addTimingRule(TimingRule{From: ACT, To: ACT, Scope: rb, Distance: 1, Gap: t["tRC"]})
	spec.addTimingRule(TimingRule{From: ACT, To: PRE, Scope: rb, Distance: 1, Gap: t["tRAS"]})
	spec.addTimingRule(TimingRule{From: ACT, To: RD, Scope: rb, Distance: 1, Gap: t["tRCD"]})
	spec.addTimingRule(TimingRule{From: ACT, To: WR, Scope: rb, Distance: 1, Gap: t["tRCD"]})
	spec.addTimingRule(TimingRule{From: PRE, To: ACT, Scope: rb, Distance: 1, Gap: t["tRP"]})
	spec.addTimingRule(TimingRule{From: RD, To: PRE, Scope: rb, Distance: 1, Gap: t["tRTP"]})
	spec.addTimingRule(TimingRule{From: WR, To: PRE, Scope: rb, Distance: 1, Gap: t["tWR"] + t["tCWL"]})

	// Rank-wide timing: distinct banks interfere on a shared command bus
	// and a shared four-activate power window.
	spec.addTimingRule(TimingRule{From: ACT, To: ACT, Scope: Rank, Distance: 1, Gap: t["tRRD"]})
	spec.addTimingRule(TimingRule{From: ACT, To: ACT, Scope: Rank, Distance: 4, Gap: t["tFAW"]})
	spec.addTimingRule(TimingRule{From: RD, To: RD, Scope: Rank, Distance: 1, Gap: t["tCCD"]})
	spec.addTimingRule(TimingRule{From: WR, To: WR, Scope: Rank, Distance: 1, Gap: t["tCCD"]})
	spec.addTimingRule(TimingRule{From: RD, To: WR, Scope: Rank, Distance: 1, Gap: t["tCL"] + t["tCCD"] - t["tCWL"]})
	spec.addTimingRule(TimingRule{From: WR, To: RD, Scope: Rank, Distance: 1, Gap: t["tWTR"] + t["tCWL"]})
	spec.addTimingRule(TimingRule{From: PREA, To: ACT, Scope: Rank, Distance: 1, Gap: t["tRP"]})
	spec.addTimingRule(TimingRule{From: REF, To: ACT, Scope: Rank, Distance: 1, Gap: t["tRFC"]})
	spec.addTimingRule(TimingRule{From: REF, To: REF, Scope: Rank, Distance: 1, Gap: t["tREFI"]})
	if hasRefSB {
		spec.addTimingRule(TimingRule{From: REFSB, To: ACT, Scope: Subarray, Distance: 1, Gap: t["tRFC"] / 4})
		spec.addTimingRule(TimingRule{From: REFSB, To: REFSB, Scope: Rank, Distance: 1, Gap: t["tREFI"] / 4})
	}
}
