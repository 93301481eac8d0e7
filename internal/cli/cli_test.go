package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/adtran-import/internal/core"
	_ "github.com/JonMunkholm/adtran-import/internal/core/devices"
)

// run executes the command line with args and returns stdout and the error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetContext(t.Context())
	err := cmd.Execute()
	return stdout.String(), err
}

func writeInventory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// =============================================================================
// devices
// =============================================================================

func TestDevicesCommand(t *testing.T) {
	out, err := run(t, "devices")
	if err != nil {
		t.Fatalf("devices returned error: %v", err)
	}

	for _, id := range core.DeviceIDs() {
		if !strings.Contains(out, id) {
			t.Errorf("output missing device %s", id)
		}
	}
	for _, profile := range []string{core.ProfileONT, core.ProfileRouter} {
		if !strings.Contains(out, profile) {
			t.Errorf("output missing profile %s", profile)
		}
	}
	if strings.Contains(out, "<<MAC>>") {
		t.Error("example column should not contain placeholders")
	}
}

func TestDevicesCommand_Template(t *testing.T) {
	out, err := run(t, "devices", "--template")
	if err != nil {
		t.Fatalf("devices returned error: %v", err)
	}
	if !strings.Contains(out, "<<MAC>>") || !strings.Contains(out, "<<SN>>") {
		t.Errorf("expected raw templates in output:\n%s", out)
	}
}

// =============================================================================
// convert
// =============================================================================

func TestConvertCommand(t *testing.T) {
	input := writeInventory(t, "Serial Number,MAC Address,FSAN\nSN1,MAC1,F1\nSN2,MAC2,F2\n")
	outDir := t.TempDir()

	out, err := run(t, "convert",
		"--file", input,
		"--device", "SDX622V",
		"--location", "ITG",
		"--company", "Acme Corp",
		"--out-dir", outDir,
	)
	if err != nil {
		t.Fatalf("convert returned error: %v", err)
	}
	if !strings.Contains(out, "Wrote 2 records") {
		t.Errorf("unexpected output: %s", out)
	}

	matches, _ := filepath.Glob(filepath.Join(outDir, "acme_corp_*_SDX622V.csv"))
	if len(matches) != 1 {
		t.Fatalf("expected one output file, found %v", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 records, got %d lines", len(lines))
	}
	if !strings.HasSuffix(lines[1], ",ITG,UNASSIGNED") {
		t.Errorf("record = %q", lines[1])
	}
}

func TestConvertCommand_TrimsCompanyAndDevice(t *testing.T) {
	input := writeInventory(t, "SN,MAC\nS1,M1\n")
	outDir := t.TempDir()

	_, err := run(t, "convert", "-f", input, "-d", " SDX622V ", "-c", "  Acme ", "-o", outDir)
	if err != nil {
		t.Fatalf("convert returned error: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one output file, found %v", entries)
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "acme_") || !strings.HasSuffix(name, "_SDX622V.csv") {
		t.Errorf("output file = %q, want acme_{date}_SDX622V.csv", name)
	}
}

func TestConvertCommand_CustomLocation(t *testing.T) {
	input := writeInventory(t, "SN,MAC\nS1,M1\n")

	tests := []struct {
		name    string
		confirm bool
		wantErr bool
	}{
		{"unconfirmed", false, true},
		{"confirmed", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outDir := t.TempDir()
			args := []string{"convert", "-f", input, "-d", "SDG841-T6", "-l", "Central Office 3", "-c", "Acme", "-o", outDir}
			if tt.confirm {
				args = append(args, "--confirm-location")
			}

			_, err := run(t, args...)
			if tt.wantErr {
				var sel *core.SelectionError
				if !errors.As(err, &sel) || sel.Field != "location_confirmed" {
					t.Fatalf("err = %v, want unconfirmed location", err)
				}
				entries, _ := os.ReadDir(outDir)
				if len(entries) != 0 {
					t.Errorf("output written despite error: %v", entries)
				}
				return
			}
			if err != nil {
				t.Fatalf("convert returned error: %v", err)
			}
		})
	}
}

func TestConvertCommand_RequiredFlags(t *testing.T) {
	_, err := run(t, "convert", "--file", "x.csv", "--device", "SDX622V")
	if err == nil || !strings.Contains(err.Error(), "company") {
		t.Errorf("err = %v, want missing company flag", err)
	}
}

func TestConvertCommand_MissingColumns(t *testing.T) {
	input := writeInventory(t, "Serial Number,Notes\nSN1,x\n")

	_, err := run(t, "convert", "-f", input, "-d", "ADTN-611", "-c", "Acme", "-o", t.TempDir())
	var missing *core.MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingColumnsError", err)
	}
	if got := describe(err); !strings.Contains(got, "Missing required columns: MAC Address") {
		t.Errorf("describe = %q", got)
	}
}

func TestDescribe_GenericError(t *testing.T) {
	err := errors.New("something odd")
	if got := describe(err); got != "something odd" {
		t.Errorf("describe = %q", got)
	}
}
