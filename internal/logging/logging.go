package logging

import (
	"log"
	"os"
)

// DebugEnabled controls whether Debug/Debugf/Debugln calls actually emit
// output. It is set automatically based on the ATOMICFS_DEBUG environment
// variable.
var DebugEnabled bool

func init() {
	// Set the global logger to use standard output.
	log.SetOutput(os.Stdout)

	// Check whether or not debugging should be enabled.
	DebugEnabled = os.Getenv("ATOMICFS_DEBUG") == "1"
}
