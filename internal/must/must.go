// Package must provides helpers for performing best-effort cleanup
// operations whose errors should be logged rather than propagated. It is
// used by the cleanup epilogue of the atomic and streaming write protocols,
// where a secondary failure (e.g. an unlink of an already-abandoned temp
// file) must never mask the primary error being returned to the caller.
package must

import (
	"io"
	"os"

	"github.com/crashsafe/atomicfs/internal/logging"
)

// Close closes c, logging any error rather than returning it.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("unable to close: %s", err.Error())
	}
}

// OSRemove removes the file at name, logging any error rather than
// returning it.
func OSRemove(name string, logger *logging.Logger) {
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		logger.Warnf("unable to remove '%s': %s", name, err.Error())
	}
}
