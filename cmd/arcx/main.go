// cmd/arcx/main.go
package main

import (
	cmd "arcx/internal/cli"
)

// main starts the arcx CLI application by delegating to the
// cobra root command defined in the arcx package. It does not
// take any arguments and does not return a value.
func main() {
	cmd.Execute()
}
