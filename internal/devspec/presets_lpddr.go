package devspec

// LPDDR3 has a bank-only hierarchy (no bank groups); the LPDDR4 preset
// adds a bank-group level with tCCDL/tRRDL same-group rules. The two
// share a preset file.

func lpddr3Family() family {
	return family{
		organizations: map[string]Organization{
			"4Gb_x32": {
				Banks: 8, Rows: 32768, Columns: 512,
				ChannelWidthBits: 32, PrefetchBeats: 8,
			},
		},
		speeds: map[string]speedGrade{
			"1600": {tck: 1.25, timing: map[string]int{
				"tCL": 14, "tCWL": 8, "tRCD": 14, "tRP": 14, "tRAS": 28, "tRC": 42,
				"tCCD": 4, "tRTP": 6, "tWR": 10, "tWTR": 5, "tRRD": 6, "tFAW": 40,
				"tRFC": 130, "tREFI": 3120,
			}},
		},
		extend: func(*DeviceSpec) {},
	}
}

func lpddr4Family() family {
	return family{
		organizations: map[string]Organization{
			"8Gb_x16": {
				BankGroups: 4, Banks: 1, Rows: 65536, Columns: 1024,
				ChannelWidthBits: 16, PrefetchBeats: 16,
			},
		},
		speeds: map[string]speedGrade{
			"3200": {tck: 0.625, timing: map[string]int{
				"tCL": 24, "tCWL": 10, "tRCD": 18, "tRP": 18, "tRAS": 34, "tRC": 52,
				"tCCD": 8, "tRTP": 8, "tWR": 16, "tWTR": 8, "tRRD": 10, "tFAW": 48,
				"tRFC": 280, "tREFI": 3904,
				"tCCDS": 4, "tCCDL": 8, "tRRDS": 8, "tRRDL": 10,
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
