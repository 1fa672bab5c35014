// Package ui holds the terminal output helpers used by the CLI:
// colored status lines and the verbose scan progress line. Structured
// logging goes to stderr separately, these helpers are the
// user-facing surface.
package ui

import "fmt"

// ASCII banner shown at startup
const ASCIILogo = `
  ___ _  _ ___ _____ _   ___  ___   _   _  _
 |_ _| \| / __|_   _/_\ / __|/ __| /_\ | \| |
  | || .' \__ \ | |/ _ \\__ \ (__ / _ \| .' |
 |___|_|\_|___/ |_/_/ \_\___/\___/_/ \_\_|\_|
        profile reconnaissance utility
`

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

// noColor disables all ANSI sequences when set
var noColor bool

// DisableColor turns every color function into a pass-through
func DisableColor() {
	noColor = true
}

func colorize(colorString string) func(string) string {
	return func(text string) string {
		if noColor {
			return text
		}
		return fmt.Sprintf(colorString, text)
	}
}

// PrintLogo prints the startup banner
func PrintLogo() {
	fmt.Print(Cyan(ASCIILogo))
}

// PrintError prints an error message in red
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Println(Red(msg + ": " + fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Println(Red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	fmt.Println(Green(msg))
}

// PrintInfo prints a labeled value in cyan/yellow
func PrintInfo(label string, value string) {
	fmt.Printf("%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Println(Yellow(msg + ": " + fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Println(Yellow(msg))
	}
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	fmt.Println(Magenta(msg))
}
