package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`work_dir = "` + filepath.Join(base, "work") + `"`,
		`log_dir = "` + filepath.Join(base, "logs") + `"`,
		"",
		"[drive]",
		`root_folder_id = "root"`,
	}, "\n")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLIConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	stdout, _, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, target) {
		t.Errorf("output missing target path: %q", stdout)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "root_folder_id") {
		t.Errorf("sample config missing root_folder_id")
	}

	if _, _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("second init over existing file should fail")
	}
}

func TestCLIConfigShowReportsSettings(t *testing.T) {
	configPath := writeTestConfig(t)
	stdout, _, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"root_folder_id", "root", "horizon_hours", "12"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	if !strings.Contains(stdout, "not set") {
		t.Errorf("credentials should report as not set:\n%s", stdout)
	}
}

func TestCLIHistoryEmptyLedger(t *testing.T) {
	configPath := writeTestConfig(t)
	stdout, _, err := runCLI(t, "--config", configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(stdout, "no runs recorded") {
		t.Errorf("output = %q", stdout)
	}
}

func TestCLIRenderRequiresCredentials(t *testing.T) {
	configPath := writeTestConfig(t)
	if _, _, err := runCLI(t, "--config", configPath, "render"); err == nil {
		t.Fatal("render without credentials should fail")
	}
}

func TestRenderPlainRows(t *testing.T) {
	got := renderPlain([]string{"A", "B"}, [][]string{{"1", "2"}, {"3", "4"}})
	want := "A\tB\n1\t2\n3\t4"
	if got != want {
		t.Errorf("renderPlain = %q, want %q", got, want)
	}
}
