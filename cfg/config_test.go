package cfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	original := Config
	defer func() { Config = original }()

	Config = &Configuration{
		Engine: EngineConfiguration{
			CacheSize:  256,
			ShadingTag: "shadedudf",
		},
		Transports: []TransportConfiguration{
			{From: "com.acme.MyFunc", To: "native_my_func"},
		},
		Renames: []RenameConfiguration{
			{From: "size", To: "cardinality"},
		},
	}

	if err := Validate(); err != nil {
		t.Errorf("Expected no error for valid config, got: %v", err)
	}
}

func TestValidate_InvalidCacheSize(t *testing.T) {
	original := Config
	defer func() { Config = original }()

	Config = &Configuration{
		Engine: EngineConfiguration{CacheSize: 0, ShadingTag: "shadedudf"},
	}

	if err := Validate(); err == nil {
		t.Error("Expected error for zero cache size")
	}
}

func TestValidate_EmptyShadingTag(t *testing.T) {
	original := Config
	defer func() { Config = original }()

	Config = &Configuration{
		Engine: EngineConfiguration{CacheSize: 64},
	}

	if err := Validate(); err == nil {
		t.Error("Expected error for empty shading tag")
	}
}

func TestValidate_IncompleteTransportMapping(t *testing.T) {
	original := Config
	defer func() { Config = original }()

	Config = &Configuration{
		Engine:     EngineConfiguration{CacheSize: 64, ShadingTag: "shadedudf"},
		Transports: []TransportConfiguration{{From: "com.acme.MyFunc"}},
	}

	if err := Validate(); err == nil {
		t.Error("Expected error for transport mapping without target")
	}
}

func TestValidate_InvalidPrometheusPort(t *testing.T) {
	original := Config
	defer func() { Config = original }()

	Config = &Configuration{
		Engine:     EngineConfiguration{CacheSize: 64, ShadingTag: "shadedudf"},
		Prometheus: PrometheusConfiguration{Enabled: true, Port: 99999},
	}

	if err := Validate(); err == nil {
		t.Error("Expected error for out-of-range Prometheus port")
	}
}

func TestLoad_FromFile(t *testing.T) {
	original := Config
	defer func() { Config = original }()
	Config = &Configuration{
		Engine: EngineConfiguration{CacheSize: 1024, ShadingTag: "shadedudf"},
	}

	content := `
[engine]
cache_size = 64
denylisted_classes = ["com.acme.Forbidden"]

[[transport]]
from = "com.acme.MyFunc"
to = "native_my_func"
coordinates = ["ivy://acme:native:2.0"]

[[rename]]
from = "size"
to = "cardinality"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if Config.Engine.CacheSize != 64 {
		t.Errorf("Expected cache_size 64, got %d", Config.Engine.CacheSize)
	}
	if len(Config.Engine.DenylistedClasses) != 1 {
		t.Errorf("Expected one denylisted class, got %v", Config.Engine.DenylistedClasses)
	}
	if len(Config.Transports) != 1 || Config.Transports[0].To != "native_my_func" {
		t.Errorf("Unexpected transports: %+v", Config.Transports)
	}
	if len(Config.Renames) != 1 || Config.Renames[0].To != "cardinality" {
		t.Errorf("Unexpected renames: %+v", Config.Renames)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	original := Config
	defer func() { Config = original }()
	Config = &Configuration{
		Engine: EngineConfiguration{CacheSize: 1024, ShadingTag: "shadedudf"},
	}

	if err := Load(filepath.Join(t.TempDir(), "absent.toml")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if Config.Engine.CacheSize != 1024 {
		t.Errorf("Defaults should survive a missing file, got cache_size %d", Config.Engine.CacheSize)
	}
}
