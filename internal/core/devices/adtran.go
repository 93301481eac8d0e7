// Package devices registers the supported Adtran hardware models.
//
// Import it for side effects:
//
//	import _ "github.com/JonMunkholm/adtran-import/internal/core/devices"
package devices

import "github.com/JonMunkholm/adtran-import/internal/core"

func init() {
	registerONTs()
	registerRouters()
}

// The order below is the order devices are offered to the operator.
func registerONTs() {
	core.Register(core.DeviceDefinition{
		ID:      "SDX622V",
		Profile: core.ProfileONT,
		NumbersTemplate: "MAC=<<MAC>>|SN=<<SN>>|ONT_FSAN=<<FSAN>>|ONT_ID=no value|ONT_NODENAME=no value" +
			"|ONT_PORT=1|ONT_PROFILE_ID=164|ONT_MOMENTUM_PASSWORD=no value",
	})
	core.Register(core.DeviceDefinition{
		ID:              "ADTN-611",
		Profile:         core.ProfileONT,
		NumbersTemplate: "MAC=<<MAC>>|SN=<<SN>>|ONT_PORT=1",
	})
	core.Register(core.DeviceDefinition{
		ID:              "ADTN-622",
		Profile:         core.ProfileONT,
		NumbersTemplate: "MAC=<<MAC>>|SN=<<SN>>|ONT_PORT=2",
	})
	core.Register(core.DeviceDefinition{
		ID:              "SDX630",
		Profile:         core.ProfileONT,
		NumbersTemplate: "MAC=<<MAC>>|SN=<<SN>>|ONT_PORT=1",
	})
	core.Register(core.DeviceDefinition{
		ID:              "ADTN-632",
		Profile:         core.ProfileONT,
		NumbersTemplate: "MAC=<<MAC>>|SN=<<SN>>|ONT_PORT=2",
	})
}

func registerRouters() {
	for _, id := range []string{"SDG841-T6", "SDG8612", "SDG854-V6"} {
		core.Register(core.DeviceDefinition{
			ID:              id,
			Profile:         core.ProfileRouter,
			NumbersTemplate: "MAC=<<MAC>>|SN=<<SN>>",
		})
	}
}
