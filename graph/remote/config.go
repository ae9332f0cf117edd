package remote

import (
	"time"

	"gopkg.in/yaml.v3"
)

// ClientConfig describes how to reach a remote quad-store server. It is
// typically decoded from YAML using gopkg.in/yaml.v3, matching the
// teacher's and the wider pack's preference for typed configuration
// structs over hand-rolled map[string]interface{} parsing
// (graph.Options.StringKey/IntKey/BoolKey in the teacher is exactly the
// untyped alternative this struct avoids).
type ClientConfig struct {
	Addr    string        `yaml:"addr"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultTimeout is used when a ClientConfig omits Timeout.
const DefaultTimeout = 10 * time.Second

func (c ClientConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// LoadClientConfig decodes a YAML document into a ClientConfig, the
// typed-config path this module prefers over graph.Options-style
// map[string]interface{} lookups.
func LoadClientConfig(data []byte) (ClientConfig, error) {
	var c ClientConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return ClientConfig{}, err
	}
	return c, nil
}
