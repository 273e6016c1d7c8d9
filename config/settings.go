package config

// BridgeConfig contains hold-repeat timing defaults, in milliseconds.
// Operator overrides from the saved settings replace these at startup.
type BridgeConfig struct {
	RepeatDelayMS    int
	RepeatIntervalMS int
}

// Bridge is the global bridge timing configuration
var Bridge BridgeConfig

func init() {
	Bridge = BridgeConfig{
		RepeatDelayMS:    400,
		RepeatIntervalMS: 150,
	}
}
