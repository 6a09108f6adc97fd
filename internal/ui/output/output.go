// Package output builds the termenv outputs the CLI writes through.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile is Ascii when NO_COLOR is set and the environment's advertised
// profile otherwise.
func Profile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New wraps w, or stderr when w is nil. The output is always treated as a
// terminal so redirected logs keep their colors unless NO_COLOR is set.
func New(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(Profile()), termenv.WithTTY(true))
}
