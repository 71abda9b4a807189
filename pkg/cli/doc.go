// Package cli implements the command-line interface for the pmflow tool.
//
// # Overview
//
// The pmflow CLI extracts performance-measurement counters from 3GPP TS
// 32.435 measurement collection files and writes the flattened records to a
// configurable output sink. It is designed for network engineers and SREs
// working with telecom PM data.
//
// # Commands
//
// extract - Extract PM counters:
//
//	pmflow extract --file A20240101.xml [--sink csv|sqlite|excel|json|yaml]
//	pmflow extract --dir ./pm [--pattern REGEXP] [--workers N]
//
// Input is one explicit file or a directory whose immediate entries are
// matched against a filename pattern (default: names beginning with "A" and
// ending in ".xml"). Optional filters restrict the extraction by measurement
// info id (--meas-info-id), object LDN (--obj-ldn, repeatable), and counter
// index (--counter); the filters combine conjunctively.
//
// For long runs, --metrics-addr exposes Prometheus run metrics and a health
// probe over HTTP while the batch is in flight.
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment
//
// Most flags can also be supplied via PMFLOW_* environment variables, and
// LOG_LEVEL/LOG_FORMAT configure logging as described in pkg/logging.
package cli
