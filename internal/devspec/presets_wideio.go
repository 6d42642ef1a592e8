package devspec

func wideIOFamily() family {
	return family{
		organizations: map[string]Organization{
			"8Gb": {
				Banks: 4, Rows: 16384, Columns: 512,
				ChannelWidthBits: 128, PrefetchBeats: 4,
			},
		},
		speeds: map[string]speedGrade{
			"266": {tck: 3.75, timing: map[string]int{
				"tCL": 6, "tCWL": 3, "tRCD": 6, "tRP": 6, "tRAS": 14, "tRC": 20,
				"tCCD": 2, "tRTP": 3, "tWR": 5, "tWTR": 3, "tRRD": 4, "tFAW": 16,
				"tRFC": 54, "tREFI": 1950,
			}},
		},
		extend: func(*DeviceSpec) {},
	}
}

func wideIO2Family() family {
	return family{
		organizations: map[string]Organization{
			"8Gb": {
				BankGroups: 2, Banks: 2, Rows: 16384, Columns: 512,
				ChannelWidthBits: 64, PrefetchBeats: 4,
			},
		},
		speeds: map[string]speedGrade{
			"800": {tck: 1.25, timing: map[string]int{
				"tCL": 9, "tCWL": 4, "tRCD": 9, "tRP": 9, "tRAS": 21, "tRC": 30,
				"tCCD": 2, "tRTP": 4, "tWR": 7, "tWTR": 4, "tRRD": 5, "tFAW": 20,
				"tRFC": 90, "tREFI": 1950,
				"tCCDS": 2, "tCCDL": 3, "tRRDS": 4, "tRRDL": 5,
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
