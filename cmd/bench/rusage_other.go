//go:build !linux

package main

// getMaxRSS returns 0 on platforms without a portable peak-RSS source;
// the report omits the RSS line when it is 0.
func getMaxRSS() uint64 {
	return 0
}
