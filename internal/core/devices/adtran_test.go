package devices

import (
	"reflect"
	"strings"
	"testing"

	"github.com/JonMunkholm/adtran-import/internal/core"
)

func TestCatalog(t *testing.T) {
	tests := []struct {
		id           string
		profile      string
		placeholders []string
		suffix       string
	}{
		{"SDX622V", core.ProfileONT, []string{core.TokenMAC, core.TokenSN, core.TokenFSAN}, "ONT_MOMENTUM_PASSWORD=no value"},
		{"ADTN-611", core.ProfileONT, []string{core.TokenMAC, core.TokenSN}, "ONT_PORT=1"},
		{"ADTN-622", core.ProfileONT, []string{core.TokenMAC, core.TokenSN}, "ONT_PORT=2"},
		{"SDX630", core.ProfileONT, []string{core.TokenMAC, core.TokenSN}, "ONT_PORT=1"},
		{"ADTN-632", core.ProfileONT, []string{core.TokenMAC, core.TokenSN}, "ONT_PORT=2"},
		{"SDG841-T6", core.ProfileRouter, []string{core.TokenMAC, core.TokenSN}, "SN=<<SN>>"},
		{"SDG8612", core.ProfileRouter, []string{core.TokenMAC, core.TokenSN}, "SN=<<SN>>"},
		{"SDG854-V6", core.ProfileRouter, []string{core.TokenMAC, core.TokenSN}, "SN=<<SN>>"},
	}

	var wantOrder []string
	for _, tt := range tests {
		wantOrder = append(wantOrder, tt.id)

		t.Run(tt.id, func(t *testing.T) {
			def, err := core.Lookup(tt.id)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", tt.id, err)
			}
			if def.Profile != tt.profile {
				t.Errorf("Profile = %q, want %q", def.Profile, tt.profile)
			}
			if got := core.Placeholders(def.NumbersTemplate); !reflect.DeepEqual(got, tt.placeholders) {
				t.Errorf("Placeholders = %v, want %v", got, tt.placeholders)
			}
			if !strings.HasPrefix(def.NumbersTemplate, "MAC=<<MAC>>|SN=<<SN>>") {
				t.Errorf("template %q does not start with MAC and SN", def.NumbersTemplate)
			}
			if !strings.HasSuffix(def.NumbersTemplate, tt.suffix) {
				t.Errorf("template %q does not end with %q", def.NumbersTemplate, tt.suffix)
			}
		})
	}

	if got := core.DeviceIDs(); !reflect.DeepEqual(got, wantOrder) {
		t.Errorf("DeviceIDs() = %v, want %v", got, wantOrder)
	}
}

func TestSDX622V_Rendering(t *testing.T) {
	def, err := core.Lookup("SDX622V")
	if err != nil {
		t.Fatal(err)
	}

	got := core.RenderNumbers(def.NumbersTemplate, core.RowFields{
		Serial: "SN123456",
		MAC:    "a1b2c3d4e5f6",
		FSAN:   "FSAN0001",
	})
	want := "MAC=a1b2c3d4e5f6|SN=SN123456|ONT_FSAN=FSAN0001|ONT_ID=no value|ONT_NODENAME=no value" +
		"|ONT_PORT=1|ONT_PROFILE_ID=164|ONT_MOMENTUM_PASSWORD=no value"
	if got != want {
		t.Errorf("RenderNumbers() =\n%q\nwant\n%q", got, want)
	}
}
