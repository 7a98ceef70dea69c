package tile

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger receives diagnostics about malformed tile data.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "tile",
	Level:  log.WarnLevel,
})
