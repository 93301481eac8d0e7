package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/adtran-import/internal/config"
)

func newTestService() *Service {
	s := NewService(config.UploadConfig{
		MaxFileSize:   1024 * 1024,
		MaxConcurrent: 2,
		MaxWaitTime:   100 * time.Millisecond,
		Timeout:       time.Second,
	})
	s.now = func() time.Time { return testDate }
	return s
}

func TestService_ConvertFile(t *testing.T) {
	withTestCatalog(t)
	s := newTestService()

	input := "Serial Number,MAC Address,FSAN\nSN123456,a1b2c3d4e5f6,FSAN0001\n"
	result, err := s.ConvertFile(context.Background(), "inv.csv", strings.NewReader(input), ConversionRequest{
		DeviceID: "SDX622V",
		Location: LocationWarehouse,
		Company:  "Acme, Inc!",
	})
	if err != nil {
		t.Fatalf("ConvertFile returned error: %v", err)
	}

	if result.ID == "" {
		t.Error("conversion ID not set")
	}
	if result.FileName != "acme_inc_20240305_SDX622V.csv" {
		t.Errorf("FileName = %q", result.FileName)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}

	var out strings.Builder
	if err := result.WriteCSV(&out); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}
	want := "device_profile,device_name,device_numbers,location,status\n" +
		"ADTN_ONT,SDX622V,MAC=a1b2c3d4e5f6|SN=SN123456|ONT_FSAN=FSAN0001|ONT_ID=no value|ONT_NODENAME=no value" +
		"|ONT_PORT=1|ONT_PROFILE_ID=164|ONT_MOMENTUM_PASSWORD=no value,WAREHOUSE,UNASSIGNED\n"
	if out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), want)
	}

	if s.LimiterStatus().Active != 0 {
		t.Error("limiter slot not released")
	}
}

func TestService_ConvertFile_ValidatesBeforeReading(t *testing.T) {
	withTestCatalog(t)
	s := newTestService()

	_, err := s.ConvertFile(context.Background(), "inv.pdf", strings.NewReader("junk"), ConversionRequest{
		DeviceID: "SDX622V",
		Location: "Custom Depot",
		Company:  "Acme",
	})
	var sel *SelectionError
	if !errors.As(err, &sel) || sel.Field != "location_confirmed" {
		t.Errorf("expected unconfirmed location error, got %v", err)
	}
}

func TestService_ConvertFile_MissingColumns(t *testing.T) {
	withTestCatalog(t)
	s := newTestService()

	_, err := s.ConvertFile(context.Background(), "inv.csv", strings.NewReader("Serial Number\nSN1\n"),
		warehouseRequest("ADTN-611"))
	if err == nil || err.Error() != "Missing required columns: MAC Address" {
		t.Errorf("err = %v", err)
	}
}

func TestService_ConvertFile_Busy(t *testing.T) {
	withTestCatalog(t)
	s := newTestService()

	for i := 0; i < s.limiter.MaxConcurrent(); i++ {
		if err := s.limiter.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire: %v", err)
		}
	}
	defer func() {
		for i := 0; i < s.limiter.MaxConcurrent(); i++ {
			s.limiter.Release()
		}
	}()

	_, err := s.ConvertFile(context.Background(), "inv.csv", strings.NewReader("SN,MAC\n"), warehouseRequest("ADTN-611"))
	if !errors.Is(err, ErrTooManyConversions) {
		t.Errorf("expected ErrTooManyConversions, got %v", err)
	}
}

func TestService_ConvertPath(t *testing.T) {
	withTestCatalog(t)
	s := newTestService()

	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.csv")
	if err := os.WriteFile(path, []byte("SN,MAC\nS1,M1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := s.ConvertPath(context.Background(), path, warehouseRequest("ADTN-611"))
	if err != nil {
		t.Fatalf("ConvertPath returned error: %v", err)
	}
	if len(result.Records) != 1 {
		t.Errorf("records = %d, want 1", len(result.Records))
	}

	out, err := result.WriteFile(dir)
	if err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	if filepath.Base(out) != result.FileName {
		t.Errorf("wrote %q, want file named %q", out, result.FileName)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "device_profile,device_name,device_numbers,location,status\n") {
		t.Errorf("unexpected output:\n%s", data)
	}
}

func TestService_ConvertPath_MissingFile(t *testing.T) {
	withTestCatalog(t)
	s := newTestService()

	_, err := s.ConvertPath(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), warehouseRequest("ADTN-611"))
	var unreadable *UnreadableFileError
	if !errors.As(err, &unreadable) {
		t.Fatalf("expected UnreadableFileError, got %v", err)
	}
	if unreadable.FileName != "nope.csv" {
		t.Errorf("FileName = %q, want nope.csv", unreadable.FileName)
	}
}
