package devspec

func gddr5Family() family {
	return family{
		organizations: map[string]Organization{
			"4Gb_x32": {
				BankGroups: 4, Banks: 4, Rows: 16384, Columns: 1024,
				ChannelWidthBits: 32, PrefetchBeats: 8,
			},
		},
		speeds: map[string]speedGrade{
			"6000": {tck: 0.333, timing: map[string]int{
				"tCL": 18, "tCWL": 6, "tRCD": 18, "tRP": 18, "tRAS": 33, "tRC": 48,
				"tCCD": 2, "tRTP": 4, "tWR": 14, "tWTR": 4, "tRRD": 6, "tFAW": 23,
				"tRFC": 263, "tREFI": 1950,
				"tCCDS": 2, "tCCDL": 3, "tRRDS": 5, "tRRDL": 6,
			}},
		},
		extend: func(spec *DeviceSpec) {
			t := spec.Timing
			spec.addTimingRule(TimingRule{From: RD, To: RD, Scope: BankGroup, Distance: 1, Gap: t["tCCDL"]})
			spec.addTimingRule(TimingRule{From: WR, To: WR, Scope: BankGroup, Distance: 1, Gap: t["tCCDL"]})
			spec.addTimingRule(TimingRule{From: RD, To: RD, Scope: Rank, Distance: 1, Gap: t["tCCDS"]})
			spec.addTimingRule(TimingRule{From: WR, To: WR, Scope: Rank, Distance: 1, Gap: t["tCCDS"]})
			spec.addTimingRule(TimingRule{From: ACT, To: ACT, Scope: BankGroup, Distance: 1, Gap: t["tRRDL"]})
			spec.addTimingRule(TimingRule{From: ACT, To: ACT, Scope: Rank, Distance: 1, Gap: t["tRRDS"]})
		},
	}
}
