package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/behrlich/go-dramsim/internal/rowpolicy"
)

func TestDefaultConfigBuildsDeviceSpec(t *testing.T) {
	cfg := DefaultConfig()
	spec, err := cfg.BuildDeviceSpec()
	if err != nil {
		t.Fatalf("BuildDeviceSpec failed: %v", err)
	}
	if spec.Org.Channels != 1 {
		t.Errorf("Channels = %d, want 1", spec.Org.Channels)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.toml")
	contents := `
standard = "DDR4"
org = "4Gb_x8"
speed = "2400R"
channels = 2
scheduler = "frfcfs-cap"
scheduler_cap = 2
row_policy = "timeout"
row_policy_timeout = 100
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Standard != "DDR4" || cfg.Channels != 2 {
		t.Errorf("cfg = %+v, want DDR4/2 channels", cfg)
	}
	// Untouched keys keep DefaultConfig's value.
	if cfg.ReadQueueMax != DefaultConfig().ReadQueueMax {
		t.Errorf("ReadQueueMax = %d, want default to survive", cfg.ReadQueueMax)
	}

	spec, err := cfg.BuildDeviceSpec()
	if err != nil {
		t.Fatalf("BuildDeviceSpec failed: %v", err)
	}
	if !spec.Org.HasBankGroups() {
		t.Error("expected DDR4 org to carry bank groups")
	}

	if _, err := cfg.BuildScheduler(); err != nil {
		t.Fatalf("BuildScheduler failed: %v", err)
	}

	rp, err := cfg.BuildRowPolicy()
	if err != nil {
		t.Fatalf("BuildRowPolicy failed: %v", err)
	}
	if rp.(rowpolicy.Timeout).T != 100 {
		t.Errorf("RowPolicyTimeout not applied: %+v", rp)
	}
}

func TestLoadRejectsUnknownStandard(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.toml")
	if err := os.WriteFile(path, []byte(`standard = "NOPE"`), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := cfg.BuildDeviceSpec(); err == nil {
		t.Error("expected BuildDeviceSpec to reject an unknown standard")
	}
}

func TestBuildSchedulerRejectsUnknownPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SchedulerPolicy = "bogus"
	if _, err := cfg.BuildScheduler(); err == nil {
		t.Error("expected error for unknown scheduler policy")
	}
}
