package phys2d

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger receives solver diagnostics. Replace it or change its level to
// redirect or silence them.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "phys2d",
	Level:  log.WarnLevel,
})
