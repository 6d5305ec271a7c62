// cmd/vbt/main.go
package main

import (
	"vcfbench/internal/app"
	"vcfbench/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
