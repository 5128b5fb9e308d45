package config

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/shine/pkg/errors"
)

// Generate renders the configuration as TOML, suitable as a config file.
func Generate(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# shine configuration\n\n")

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return buf.Bytes(), nil
}
