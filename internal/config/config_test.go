package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Addr != ":8000" {
		t.Fatalf("default addr = %q", cfg.Server.Addr)
	}
	if cfg.OpenAI.ChatModel != "gpt-4o" {
		t.Fatalf("default chat model = %q", cfg.OpenAI.ChatModel)
	}
	if cfg.Source.SearchLimit != 5 || cfg.Source.ReportLimit != 3 || cfg.Source.SectionLimit != 800 {
		t.Fatalf("unexpected source defaults: %+v", cfg.Source)
	}
}

func TestLoadMergesFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
server:
  addr: ":9999"
chroma:
  tenant: file-tenant
source:
  reportLimit: 2
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MEMEXPLAINER_CONFIG", path)

	cfg := Load()

	if cfg.Server.Addr != ":9999" {
		t.Fatalf("addr = %q, want file value", cfg.Server.Addr)
	}
	if cfg.Chroma.Tenant != "file-tenant" {
		t.Fatalf("tenant = %q, want file value", cfg.Chroma.Tenant)
	}
	if cfg.Source.ReportLimit != 2 {
		t.Fatalf("reportLimit = %d, want file value", cfg.Source.ReportLimit)
	}
	if cfg.Source.SearchLimit != 5 {
		t.Fatalf("searchLimit = %d, want default preserved", cfg.Source.SearchLimit)
	}
}

func TestEnvOverridesBeatFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
chroma:
  apiKey: from-file
  tenant: file-tenant
  database: file-db
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MEMEXPLAINER_CONFIG", path)
	t.Setenv("CHROMA_API_KEY", "from-env")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg := Load()

	if cfg.Chroma.APIKey != "from-env" {
		t.Fatalf("chroma api key = %q, want env value", cfg.Chroma.APIKey)
	}
	if cfg.Chroma.Tenant != "file-tenant" {
		t.Fatalf("tenant = %q, want file value", cfg.Chroma.Tenant)
	}
	if cfg.OpenAI.APIKey != "sk-env" {
		t.Fatalf("openai api key = %q, want env value", cfg.OpenAI.APIKey)
	}
}
