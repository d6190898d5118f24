package dlib

import (
	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
)

// silent is the logger of a Loader without Logger.
var silent log.Interface = &log.Logger{Handler: discard.Default, Level: log.FatalLevel}
