package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.xml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPopulatesFieldsAndSingleton(t *testing.T) {
	path := writeConfig(t, `<configuration>
  <llvm>
    <path>/usr/lib/llvm-14/bin</path>
    <minVersion>14.0</minVersion>
  </llvm>
  <targetTriple>x86_64-unknown-linux-gnu</targetTriple>
  <systemImports>
    <unit>System</unit>
    <unit>System.Collections</unit>
  </systemImports>
</configuration>`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLVM.Path != "/usr/lib/llvm-14/bin" {
		t.Fatalf("LLVM.Path = %q", cfg.LLVM.Path)
	}
	if len(cfg.SystemImports) != 2 || cfg.SystemImports[0] != "System" {
		t.Fatalf("SystemImports = %v", cfg.SystemImports)
	}
	if Current() != cfg {
		t.Fatal("Current() did not return the just-loaded singleton")
	}
}

func TestLoadFillsDefaultMinVersionWhenOmitted(t *testing.T) {
	path := writeConfig(t, `<configuration><llvm><path>/usr/bin</path></llvm></configuration>`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLVM.MinVersion == "" {
		t.Fatal("expected a default minimum LLVM version to be filled in")
	}
}

func TestLoadRejectsMissingLLVMPath(t *testing.T) {
	path := writeConfig(t, `<configuration></configuration>`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a configuration with no <llvm><path>")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.xml")); err == nil {
		t.Fatal("expected an error for a missing configuration file")
	}
}
