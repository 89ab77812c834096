package output

// SgrModifier is a terminal escape sequence (Select Graphic Rendition).
// The Printer drops all modifiers passed as arguments if escape sequences are disabled.
type SgrModifier string

const (
	Reset             SgrModifier = "\x1B[0m"
	BoldIntensity     SgrModifier = "\x1B[1m"
	FaintIntensity    SgrModifier = "\x1B[2m"
	NormalIntensity   SgrModifier = "\x1B[22m"
	Invert            SgrModifier = "\x1B[7m"
	Red               SgrModifier = "\x1B[31m"
	Green             SgrModifier = "\x1B[32m"
	Yellow            SgrModifier = "\x1B[33m"
	Magenta           SgrModifier = "\x1B[35m"
	Cyan              SgrModifier = "\x1B[36m"
	DefaultForeground SgrModifier = "\x1B[39m"
)

// TerminalFormatAsDim wraps the text in faint intensity, it does not respect the printer setting.
func TerminalFormatAsDim(text string) string {
	return string(FaintIntensity) + text + string(Reset)
}
