package runtime

import (
	"fmt"

	"github.com/adrg/xdg"
)

const (
	XDGName = "fable"

	// LogFileName is the debug log written when --debug is set and no
	// logFile is configured.
	LogFileName = "debug.log"
)

// File returns the path of filename under the fable runtime directory,
// creating parent directories as needed.
func File(filename string) (string, error) {
	return xdg.RuntimeFile(fmt.Sprintf("%s/%s", XDGName, filename))
}
