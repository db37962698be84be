// Command dayplan runs the day planner offline against a request file and
// prints the result as JSON.
package main

import (
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
