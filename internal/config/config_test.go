package config

import (
	"testing"
	"time"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/textures/input", "/textures/input"},
		{"single trailing slash", "/textures/input/", "/textures/input"},
		{"multiple trailing slashes", "/textures/input///", "/textures/input"},
		{"root path", "/", "/"},
		{"relative path", "output", "output"},
		{"relative with slash", "output/", "output"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero max-dim", func(c *Config) { c.MaxDim = 0 }, true},
		{"negative max-dim", func(c *Config) { c.MaxDim = -1 }, true},
		{"zero jobs", func(c *Config) { c.Jobs = 0 }, true},
		{"many jobs", func(c *Config) { c.Jobs = 16 }, false},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, true},
		{"positive timeout", func(c *Config) { c.Timeout = 10 * time.Minute }, false},
		{"bad color mode", func(c *Config) { c.ColorMode = "sometimes" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip path requirement
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiresPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail without paths")
	}

	cfg.InputDir = "/in"
	cfg.OutputDir = "/out"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with paths: %v", err)
	}
}

func TestValidatePaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		wantErr bool
	}{
		{"disjoint", "/a/in", "/a/out", false},
		{"output inside input", "/a/in", "/a/in/out", true},
		{"same directory", "/a/in", "/a/in", true},
		{"shared prefix but sibling", "/a/input", "/a/input-done", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.ValidatePaths(tt.input, tt.output)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePaths(%q, %q) error = %v, wantErr %v",
					tt.input, tt.output, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvModelName, "esrgan-anime")
	t.Setenv(EnvModelCmd, "up -i {input} -o {output}")
	t.Setenv(EnvOutputDir, "/var/out")

	cfg := DefaultConfig()
	if cfg.ModelName != "esrgan-anime" {
		t.Errorf("ModelName = %q", cfg.ModelName)
	}
	if cfg.ModelCommand != "up -i {input} -o {output}" {
		t.Errorf("ModelCommand = %q", cfg.ModelCommand)
	}
	if cfg.OutputDir != "/var/out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

func TestParseFlags_Positionals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = ""
	if err := ParseFlags(&cfg, "test", []string{"--dry-run", "in/", "out/"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.InputDir != "in" || cfg.OutputDir != "out" {
		t.Errorf("paths = %q, %q", cfg.InputDir, cfg.OutputDir)
	}
	if !cfg.DryRun {
		t.Error("DryRun not set")
	}
}

func TestParseFlags_OutputFromEnv(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = "/env/out" // as if TEXFORGE_OUTPUT_DIR was set
	if err := ParseFlags(&cfg, "test", []string{"in"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.InputDir != "in" || cfg.OutputDir != "/env/out" {
		t.Errorf("paths = %q, %q", cfg.InputDir, cfg.OutputDir)
	}
}

func TestParseFlags_MissingArgs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = ""
	if err := ParseFlags(&cfg, "test", nil); err == nil {
		t.Error("ParseFlags should fail with no positional args")
	}
}

func TestParseFlags_CheckMode(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, "test", []string{"--check"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if !cfg.CheckOnly {
		t.Error("CheckOnly not set")
	}
}

func TestParseFlags_ColorOverrides(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, "test", []string{"--no-color", "in", "out"}); err != nil {
		t.Fatal(err)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}

	cfg = DefaultConfig()
	if err := ParseFlags(&cfg, "test", []string{"--color", "in", "out"}); err != nil {
		t.Fatal(err)
	}
	if cfg.ColorMode != ColorAlways {
		t.Errorf("ColorMode = %q, want always", cfg.ColorMode)
	}
}
