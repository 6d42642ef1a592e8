package devspec

func ddr4Family() family {
	return family{
		organizations: map[string]Organization{
			"4Gb_x4": {
				BankGroups: 4, Banks: 4, Rows: 65536, Columns: 1024,
				ChannelWidthBits: 64, PrefetchBeats: 8,
			},
			"4Gb_x8": {
				BankGroups: 2, Banks: 4, Rows: 65536, Columns: 1024,
				ChannelWidthBits: 64, PrefetchBeats: 8,
			},
			"8Gb_x8": {
				BankGroups: 4, Banks: 4, Rows: 65536, Columns: 1024,
				ChannelWidthBits: 64, PrefetchBeats: 8,
			},
		},
		speeds: map[string]speedGrade{
			"2400R": {tck: 0.833, timing: map[string]int{
				"tCL": 17, "tCWL": 12, "tRCD": 17, "tRP": 17, "tRAS": 39, "tRC": 56,
				"tCCD": 4, "tRTP": 9, "tWR": 18, "tWTR": 8, "tRRD": 6, "tFAW": 28,
				"tRFC": 420, "tREFI": 9360,
				"tCCDS": 4, "tCCDL": 6, "tRRDS": 5, "tRRDL": 6,
			}},
			"3200AA": {tck: 0.625, timing: map[string]int{
				"tCL": 22, "tCWL": 16, "tRCD": 22, "tRP": 22, "tRAS": 52, "tRC": 74,
				"tCCD": 4, "tRTP": 12, "tWR": 24, "tWTR": 10, "tRRD": 8, "tFAW": 32,
				"tRFC": 560, "tREFI": 12480,
				"tCCDS": 4, "tCCDL": 8, "tRRDS": 6, "tRRDL": 8,
			}},
		},
		extend: func(spec *DeviceSpec) {
			t := spec.Timing
			// Distinct-bank-group accesses move faster than same-group:
			// tCCDS (short, cross-group) and tCCDL/tRRDL (long, same-group).
			spec.addTimingRule(TimingRule{From: RD, To: RD, Scope: BankGroup, Distance: 1, Gap: t["tCCDL"]})
			spec.addTimingRule(TimingRule{From: WR, To: WR, Scope: BankGroup, Distance: 1, Gap: t["tCCDL"]})
			spec.addTimingRule(TimingRule{From: RD, To: RD, Scope: Rank, Distance: 1, Gap: t["tCCDS"]})
			spec.addTimingRule(TimingRule{From: WR, To: WR, Scope: Rank, Distance: 1, Gap: t["tCCDS"]})
			spec.addTimingRule(TimingRule{From: ACT, To: ACT, Scope: BankGroup, Distance: 1, Gap: t["tRRDL"]})
			spec.addTimingRule(TimingRule{From: ACT, To: ACT, Scope: Rank, Distance: 1, Gap: t["tRRDS"]})
		},
	}
}
