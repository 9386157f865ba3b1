package config

import "custclean/pkg/contracts"

// Application constants
const (
	// Application Info
	AppName    = "custclean"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable (CUSTCLEAN_INPUT_PATH, ...)
	EnvPrefix = "CUSTCLEAN"

	// File Paths (relative to the working directory)
	DefaultInputPath  = "data/dataset.txt"
	DefaultOutputPath = "Cleaned_Customer_Data.xlsx"
	DefaultLogFile    = "logs/custclean.log"

	// Input / Output
	DefaultDelimiter = ","
	DefaultSheetName = "Sheet1"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Console preview
	PreviewRows = 5
)
