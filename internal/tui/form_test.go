package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/adtran-import/internal/config"
	"github.com/JonMunkholm/adtran-import/internal/core"
	_ "github.com/JonMunkholm/adtran-import/internal/core/devices"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Helpers
// =============================================================================

func newTestModel(t *testing.T) (Model, string) {
	t.Helper()
	service := core.NewService(config.UploadConfig{
		MaxFileSize:   1024 * 1024,
		MaxConcurrent: 1,
		MaxWaitTime:   time.Second,
		Timeout:       10 * time.Second,
	})
	outDir := t.TempDir()
	return NewModel(context.Background(), service, outDir), outDir
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msgs to the model in order and returns the last command.
func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

// toCompany drives the form to the company step with a preset location.
func toCompany(t *testing.T, m Model, path string) Model {
	t.Helper()
	m, _ = send(m,
		runes(path), keyMsg(tea.KeyEnter), // file
		keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter), // ADTN-611
		keyMsg(tea.KeyEnter), // WAREHOUSE
	)
	if m.Step() != StepCompany {
		t.Fatalf("step = %v, want StepCompany (err: %v)", m.Step(), m.err)
	}
	return m
}

// =============================================================================
// Flow Tests
// =============================================================================

func TestModel_PresetLocationFlow(t *testing.T) {
	m, outDir := newTestModel(t)
	path := writeInput(t, "Serial Number,MAC Address\nSN1,MAC1\n,\nSN2,MAC2\n")

	m = toCompany(t, m, path)
	req := m.Request()
	if req.DeviceID != "ADTN-611" || req.Location != core.LocationWarehouse || req.LocationConfirmed {
		t.Fatalf("request = %+v", req)
	}

	m, cmd := send(m, runes("Acme Corp"), keyMsg(tea.KeyEnter))
	if m.Step() != StepConverting {
		t.Fatalf("step = %v, want StepConverting (err: %v)", m.Step(), m.err)
	}
	if cmd == nil {
		t.Fatal("expected a conversion command")
	}

	m, _ = send(m, cmd())
	result, out, err := m.Result()
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	if len(result.Records) != 2 {
		t.Errorf("records = %d, want 2", len(result.Records))
	}
	if filepath.Dir(out) != outDir || !strings.HasPrefix(filepath.Base(out), "acme_corp_") {
		t.Errorf("output path = %q", out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file missing: %v", err)
	}
	if !strings.Contains(m.View(), "Wrote 2 records") {
		t.Errorf("view missing summary:\n%s", m.View())
	}
}

func TestModel_CustomLocationNeedsConfirmation(t *testing.T) {
	m, _ := newTestModel(t)
	path := writeInput(t, "SN,MAC\nS1,M1\n")

	m, _ = send(m,
		runes(path), keyMsg(tea.KeyEnter),
		keyMsg(tea.KeyEnter), // SDX622V
		keyMsg(tea.KeyDown), keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter),
	)
	if m.Step() != StepCustomLocation {
		t.Fatalf("step = %v, want StepCustomLocation", m.Step())
	}

	m, _ = send(m, keyMsg(tea.KeyEnter))
	if m.Step() != StepCustomLocation || m.err == nil {
		t.Fatalf("blank custom location accepted: step=%v err=%v", m.Step(), m.err)
	}

	m, _ = send(m, runes("Depot 9"), keyMsg(tea.KeyEnter))
	if m.Step() != StepConfirmLocation {
		t.Fatalf("step = %v, want StepConfirmLocation", m.Step())
	}
	if !strings.Contains(m.View(), `"Depot 9"`) {
		t.Errorf("confirmation view does not quote the location:\n%s", m.View())
	}

	m, _ = send(m, runes("n"))
	if m.Step() != StepCustomLocation {
		t.Fatalf("step after n = %v, want StepCustomLocation", m.Step())
	}

	m, _ = send(m, keyMsg(tea.KeyEnter), runes("y"))
	if m.Step() != StepCompany {
		t.Fatalf("step after y = %v, want StepCompany", m.Step())
	}
	req := m.Request()
	if req.Location != "Depot 9" || !req.LocationConfirmed {
		t.Errorf("request = %+v", req)
	}
}

func TestModel_FileStepRejectsBadPaths(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"blank", "   "},
		{"missing", filepath.Join(t.TempDir(), "nope.csv")},
		{"directory", t.TempDir()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			m, _ = send(m, runes(tt.input), keyMsg(tea.KeyEnter))
			if m.Step() != StepFile {
				t.Errorf("step = %v, want StepFile", m.Step())
			}
			if m.err == nil {
				t.Error("expected an error message")
			}
		})
	}
}

func TestModel_CompanyRequired(t *testing.T) {
	m, _ := newTestModel(t)
	m = toCompany(t, m, writeInput(t, "SN,MAC\nS1,M1\n"))

	m, cmd := send(m, runes("  "), keyMsg(tea.KeyEnter))
	if m.Step() != StepCompany {
		t.Fatalf("step = %v, want StepCompany", m.Step())
	}
	if cmd != nil {
		t.Error("conversion started without a company")
	}
	var sel *core.SelectionError
	if !errors.As(m.err, &sel) || sel.Field != "company" {
		t.Errorf("err = %v, want company selection error", m.err)
	}
}

func TestModel_ConversionErrorShown(t *testing.T) {
	m, _ := newTestModel(t)
	m = toCompany(t, m, writeInput(t, "Serial Number,Notes\nSN1,x\n"))

	m, cmd := send(m, runes("Acme"), keyMsg(tea.KeyEnter))
	m, _ = send(m, cmd())

	_, out, err := m.Result()
	var missing *core.MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingColumnsError", err)
	}
	if out != "" {
		t.Errorf("output path = %q, want none", out)
	}
	if !strings.Contains(m.View(), "Missing required columns: MAC Address") {
		t.Errorf("view missing error:\n%s", m.View())
	}
}

// =============================================================================
// Navigation Tests
// =============================================================================

func TestModel_EscGoesBack(t *testing.T) {
	m, _ := newTestModel(t)
	m = toCompany(t, m, writeInput(t, "SN,MAC\nS1,M1\n"))

	steps := []Step{StepLocation, StepDevice, StepFile}
	for _, want := range steps {
		m, _ = send(m, keyMsg(tea.KeyEsc))
		if m.Step() != want {
			t.Fatalf("step = %v, want %v", m.Step(), want)
		}
	}
}

func TestModel_DeviceCursorBounds(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, runes(writeInput(t, "SN,MAC\n")), keyMsg(tea.KeyEnter))

	m, _ = send(m, keyMsg(tea.KeyUp))
	if m.deviceCursor != 0 {
		t.Errorf("cursor moved above the first device: %d", m.deviceCursor)
	}

	for i := 0; i < len(m.devices)+3; i++ {
		m, _ = send(m, runes("j"))
	}
	if m.deviceCursor != len(m.devices)-1 {
		t.Errorf("cursor = %d, want %d", m.deviceCursor, len(m.devices)-1)
	}
	if !strings.Contains(m.View(), core.PreviewNumbers(m.devices[m.deviceCursor])) {
		t.Errorf("view missing template preview:\n%s", m.View())
	}
}

func TestModel_RestartAfterDone(t *testing.T) {
	m, _ := newTestModel(t)
	m = toCompany(t, m, writeInput(t, "SN,MAC\nS1,M1\n"))
	m, cmd := send(m, runes("Acme"), keyMsg(tea.KeyEnter))
	m, _ = send(m, cmd(), runes("r"))

	if m.Step() != StepFile {
		t.Errorf("step = %v, want StepFile", m.Step())
	}
	if m.Request() != (core.ConversionRequest{}) {
		t.Errorf("request not reset: %+v", m.Request())
	}
}
