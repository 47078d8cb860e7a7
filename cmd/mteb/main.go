// cmd/mteb/main.go
package main

import (
	cmd "github.com/mwiater/mteb/internal/cli"
)

var executeCmd = cmd.Execute

// main starts the mteb CLI application by delegating to the cobra root
// command defined in the mteb package.
func main() {
	executeCmd()
}
