// Package config loads the command-line configuration.
//
// Values are layered: built-in defaults, then an optional YAML file,
// then HEMEROTECA_* environment variables. Command-line flags are applied
// by the caller on top of the loaded Config. A .env file may provide
// environment variables such as API keys before loading.
package config
