package model

import "fmt"

// Config is an ON/OFF switch given on the command line.
type Config bool

const (
	On  Config = true
	Off Config = false
)

var configName = map[string]Config{
	"ON":   On,
	"On":   On,
	"on":   On,
	"1":    On,
	"true": On,

	"OFF":   Off,
	"Off":   Off,
	"off":   Off,
	"0":     Off,
	"false": Off,
}

func NewConfig(s string) Config {
	return configName[s]
}

func ParseConfig(s string) (Config, error) {
	c, ok := configName[s]
	if !ok {
		return Off, fmt.Errorf("switch %q is neither ON nor OFF", s)
	}
	return c, nil
}

func (c Config) String() string {
	if c {
		return "ON"
	}
	return "OFF"
}

// Set makes *Config a flag.Value.
func (c *Config) Set(s string) (err error) {
	*c, err = ParseConfig(s)
	return
}
