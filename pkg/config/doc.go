// Package config loads shine's settings.
//
// Configuration is layered with koanf, lowest to highest:
//
//  1. the embedded defaults.toml
//  2. the user file ($XDG_CONFIG_HOME/shine/config.toml or an explicit path)
//  3. SHINE_* environment variables (SHINE_RENDER_MAX_ROWS sets render.max_rows)
//  4. explicit overrides, usually command line flags
package config
