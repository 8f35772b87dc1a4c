package display

import (
	"fmt"
	"os"

	"github.com/halfmoat/texforge/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` _____         _____
|_   _|____  _|  ___|__  _ __ __ _  ___
  | |/ _ \ \/ / |_ / _ \| '__/ _`+"`"+` |/ _ \
  | |  __/>  <|  _| (_) | | | (_| |  __/
  |_|\___/_/\_\_|  \___/|_|  \__, |\___|
                             |___/
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
