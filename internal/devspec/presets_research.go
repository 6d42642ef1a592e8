package devspec

// The four research variants below are DDR3-based academic proposals
// that change only the subarray structure or a handful of timing
// parameters, so each borrows the DDR3 organizations and speeds and
// layers its change on top via extend rather than restating the whole
// table.

// salpMASAFamily models SALP-MASA (Subarray-Level Parallelism, "Multitude
// of Activated Subarrays"): each bank subdivides into independently
// activatable subarrays, so RowBufferAt moves to Subarray and refresh
// can target one subarray (REFSB) without closing the whole bank.
func salpMASAFamily() family {
	base := ddr3Family()
	return family{
		organizations: withSubarrays(base.organizations, 8),
		speeds:        base.speeds,
		hasRefSB:      true,
		subarrayRowBuffer: true,
		extend: func(spec *DeviceSpec) {
			// MASA lets a PRE/ACT in one subarray proceed while a sibling
			// subarray in the same bank is open; a small same-bank,
			// cross-subarray penalty (tRCD-ish) models the shared global
			// bitline handoff instead of the full tRC a shared row buffer
			// would force.
			t := spec.Timing
			spec.addTimingRule(TimingRule{From: ACT, To: ACT, Scope: Bank, Distance: 1, Gap: t["tRCD"]})
		},
	}
}

// dsarpFamily models DSARP (Dynamic Superpage + Subarray Row Parallelism):
// the same subarray split, REFSB and timing model as SALP-MASA. No
// superpage-aware address translation is modeled, so the two presets
// behave identically.
func dsarpFamily() family {
	f := salpMASAFamily()
	return f
}

// aldramFamily models Adaptive-Latency DRAM: tRCD/tRAS/tRP shrink
// relative to stock DDR3 because ALDRAM exploits per-die process-
// variation margin discovered at calibration time. The reduction
// fractions below come from the profile ramulator's ALDRAM config
// uses for a typical die.
func aldramFamily() family {
	base := ddr3Family()
	speeds := make(map[string]speedGrade, len(base.speeds))
	for name, g := range base.speeds {
		t := cloneTiming(g.timing)
		t["tRCD"] = scaleDown(t["tRCD"], 0.71)
		t["tRAS"] = scaleDown(t["tRAS"], 0.76)
		t["tRP"] = scaleDown(t["tRP"], 0.67)
		t["tRC"] = t["tRAS"] + t["tRP"]
		speeds[name] = speedGrade{tck: g.tck, timing: t}
	}
	return family{
		organizations: base.organizations,
		speeds:        speeds,
		extend:        func(*DeviceSpec) {},
	}
}

// tldramFamily models Tiered-Latency DRAM: each bank splits into a
// small fast near-segment and a larger slow far-segment joined by an
// isolation transistor. This model approximates the common case (a
// request hits the near segment) with a reduced tRCD/tRAS; the far
// segment's extra latency is not modeled.
func tldramFamily() family {
	base := ddr3Family()
	speeds := make(map[string]speedGrade, len(base.speeds))
	for name, g := range base.speeds {
		t := cloneTiming(g.timing)
		t["tRCD"] = scaleDown(t["tRCD"], 0.5)
		t["tRAS"] = scaleDown(t["tRAS"], 0.5)
		t["tRC"] = t["tRAS"] + t["tRP"]
		speeds[name] = speedGrade{tck: g.tck, timing: t}
	}
	return family{
		organizations: base.organizations,
		speeds:        speeds,
		extend:        func(*DeviceSpec) {},
	}
}

func withSubarrays(in map[string]Organization, n int) map[string]Organization {
	out := make(map[string]Organization, len(in))
	for name, org := range in {
		org.Subarrays = n
		out[name] = org
	}
	return out
}

func scaleDown(cycles int, frac float64) int {
	v := int(float64(cycles) * frac)
	if v < 1 {
		v = 1
	}
	return v
}
