package core

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"
	"time"
)

func TestOutputFileName(t *testing.T) {
	date := time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		company string
		device  string
		want    string
	}{
		{"Acme, Inc!", "ADTN-611", "acme_inc_20240305_ADTN-611.csv"},
		{"North-East Fiber", "SDX622V", "north-east_fiber_20240305_SDX622V.csv"},
		{"Müller GmbH", "SDG8612", "mller_gmbh_20240305_SDG8612.csv"},
		{"!!!", "SDX630", "_20240305_SDX630.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.company, func(t *testing.T) {
			if got := OutputFileName(tt.company, tt.device, date); got != tt.want {
				t.Errorf("OutputFileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	records := []OutputRecord{
		{
			DeviceProfile: ProfileONT,
			DeviceName:    "ADTN-611",
			DeviceNumbers: "MAC=AA|SN=S1|ONT_PORT=1",
			Location:      "Depot, North",
			Status:        DefaultStatus,
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	want := [][]string{
		OutputColumns,
		{"ADTN_ONT", "ADTN-611", "MAC=AA|SN=S1|ONT_PORT=1", "Depot, North", "UNASSIGNED"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	want := "device_profile,device_name,device_numbers,location,status\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
