// Package version is set at build time:
//
//	go build -ldflags "-X vcfbench/internal/version.Version=v1.2.3" ./cmd/vbt
package version

var Version = "dev"
