package devspec

// HBM stacks 8 independent pseudo-channels per die; this model treats
// each pseudo-channel as a devspec.Channel, so no bank-group level is
// needed -- the wide parallelism lives in Organization.Channels, set
// by the config layer rather than here.
func hbmFamily() family {
	return family{
		organizations: map[string]Organization{
			"4Gb": {
				Banks: 8, Rows: 16384, Columns: 64,
				ChannelWidthBits: 128, PrefetchBeats: 2,
			},
		},
		speeds: map[string]speedGrade{
			"1000": {tck: 1.0, timing: map[string]int{
				"tCL": 7, "tCWL": 5, "tRCD": 7, "tRP": 7, "tRAS": 17, "tRC": 24,
				"tCCD": 2, "tRTP": 3, "tWR": 8, "tWTR": 3, "tRRD": 4, "tFAW": 16,
				"tRFC": 160, "tREFI": 3900,
			}},
		},
		extend: func(*DeviceSpec) {},
	}
}
