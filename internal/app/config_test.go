package app

import (
	"flag"
	"testing"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-scale", "8", "-tps", "30", "-hud", "0"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Scale != 8 || cfg.TPS != 30 || cfg.HUDWidth != 0 {
		t.Fatalf("config = %+v", *cfg)
	}
	if cfg.Sim != "submarine" || cfg.Seed != 1337 {
		t.Fatalf("unset flags should keep defaults, got %+v", *cfg)
	}
}
