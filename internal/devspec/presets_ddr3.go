package devspec

func ddr3Family() family {
	return family{
		organizations: map[string]Organization{
			"1Gb_x8": {
				Banks: 8, Rows: 16384, Columns: 1024,
				ChannelWidthBits: 64, PrefetchBeats: 8,
			},
			"2Gb_x8": {
				Banks: 8, Rows: 32768, Columns: 1024,
				ChannelWidthBits: 64, PrefetchBeats: 8,
			},
			"4Gb_x8": {
				Banks: 8, Rows: 65536, Columns: 1024,
				ChannelWidthBits: 64, PrefetchBeats: 8,
			},
		},
		speeds: map[string]speedGrade{
			"1333H": {tck: 1.5, timing: map[string]int{
				"tCL": 9, "tCWL": 7, "tRCD": 9, "tRP": 9, "tRAS": 24, "tRC": 33,
				"tCCD": 4, "tRTP": 5, "tWR": 10, "tWTR": 5, "tRRD": 5, "tFAW": 20,
				"tRFC": 74, "tREFI": 6240,
			}},
			"1600K": {tck: 1.25, timing: map[string]int{
				"tCL": 11, "tCWL": 8, "tRCD": 11, "tRP": 11, "tRAS": 28, "tRC": 39,
				"tCCD": 4, "tRTP": 6, "tWR": 12, "tWTR": 6, "tRRD": 6, "tFAW": 24,
				"tRFC": 88, "tREFI": 7488,
			}},
		},
		extend: func(*DeviceSpec) {},
	}
}
