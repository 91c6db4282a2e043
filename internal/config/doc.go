// Package config provides configuration management for the edmx CLI.
//
// # Configuration File
//
// The default configuration file location is $XDG_CONFIG_HOME/edmx/config.yaml:
//
//	version: 1
//	profile: europeana          # name in the profiles dir, or a path
//	schema:
//	  shapes: ""                # empty uses the embedded shapes
//	  classes: ""
//	output:
//	  format: text              # text, json, yaml or toml
//	checks:
//	  orphans: false
//	limits:
//	  max_record_size: 16777216
//	batch:
//	  workers: 0                # 0 means GOMAXPROCS
//
// Every key can be overridden from the environment with the EDMX_ prefix and
// dots replaced by underscores, e.g. EDMX_OUTPUT_FORMAT=json. Variables may
// also come from a .env file, see [LoadEnv].
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//
// [Load] validates the result; invalid fields are reported as [FieldError]
// values that match both their cause and errors.ErrInvalidConfig.
package config
