package config

import (
	"reflect"
	"testing"
	"time"

	"health-companion/internal/engine"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBMaxOpenConns != 10 || cfg.DBMaxIdleConns != 5 {
		t.Errorf("pool conns = %d/%d, want 10/5", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	}
	if cfg.DBConnMaxIdle != 5*time.Minute || cfg.DBConnMaxLife != 30*time.Minute {
		t.Errorf("pool lifetimes = %v/%v, want 5m/30m", cfg.DBConnMaxIdle, cfg.DBConnMaxLife)
	}
	if cfg.DBPingTimeout != 3*time.Second {
		t.Errorf("ping timeout = %v, want 3s", cfg.DBPingTimeout)
	}

	ec, err := cfg.Engine()
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	if !reflect.DeepEqual(ec, engine.DefaultConfig()) {
		t.Errorf("engine config without overrides should equal defaults, got %+v", ec)
	}
}

func TestLoad_PoolKnobsFromEnv(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_PING_TIMEOUT", "750ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBMaxOpenConns != 25 {
		t.Errorf("DBMaxOpenConns = %d, want 25", cfg.DBMaxOpenConns)
	}
	if cfg.DBPingTimeout != 750*time.Millisecond {
		t.Errorf("DBPingTimeout = %v, want 750ms", cfg.DBPingTimeout)
	}
}

func TestLoad_BandKnobsFromEnv(t *testing.T) {
	t.Setenv("ENGINE_BP_HIGH_SYS", "150")
	t.Setenv("ENGINE_HR_HIGH", "110")
	t.Setenv("ENGINE_TEMP_HIGH", "37.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ec, err := cfg.Engine()
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	if ec.BP.HighSys != 150 {
		t.Errorf("BP.HighSys = %d, want 150", ec.BP.HighSys)
	}
	if ec.HeartRate.HighAbove != 110 {
		t.Errorf("HeartRate.HighAbove = %v, want 110", ec.HeartRate.HighAbove)
	}
	if ec.Temperature.HighAbove != 37.5 {
		t.Errorf("Temperature.HighAbove = %v, want 37.5", ec.Temperature.HighAbove)
	}
}

func TestLoad_RejectsIncoherentBands(t *testing.T) {
	// high por debajo de elevated: bandas no crecientes
	t.Setenv("ENGINE_BP_HIGH_SYS", "100")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-increasing systolic bands")
	}
}

func TestLoad_RejectsBadScoreWeights(t *testing.T) {
	t.Setenv("ENGINE_SCORE_WEIGHT_RISK", "0.9")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for score weights not summing to 1")
	}
}
