// Package config provides configuration management for custclean.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority), including a .env file
//  2. A YAML configuration file (config.yaml, configs/config.yaml, or CUSTCLEAN_CONFIG_FILE)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CUSTCLEAN_<SECTION>_<FIELD>:
//
//	CUSTCLEAN_INPUT_PATH=data/dataset.txt
//	CUSTCLEAN_INPUT_DELIMITER=,
//	CUSTCLEAN_OUTPUT_PATH=Cleaned_Customer_Data.xlsx
//	CUSTCLEAN_LOGGING_LEVEL=debug
//	CUSTCLEAN_AUDIT_DSN=audit.db
//	CUSTCLEAN_TELEMETRY_METRICS_TEXTFILE=custclean.prom
//
// # Validation
//
// The loaded configuration is validated with go-playground/validator. The
// delimiter must be a single character and every path must be non-empty.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := config.GetPaths(cfg)
package config
