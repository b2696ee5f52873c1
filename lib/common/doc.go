// Package common contains the process wide configuration of tKV and the logging setup.
//
// All packages obtain their loggers through dragonboat's logger.GetLogger. InitLoggers installs
// a factory producing loggers with the format
//
//	2025/01/02 15:04:05 WARN  | store           | could not decode value for key "x": ...
//
// writing to stderr, and sets the level of every named tKV logger.
package common
