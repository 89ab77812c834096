package output

import (
	"fmt"
	"io"
	"os"
)

type Class int

const (
	Required Class = iota //explicitly requested information
	Error                 //goes to the diagnosis stream
	Normal                //noteworthy facts
	Verbose               //talkative, repeats context
)

type Printer struct {
	classes    map[Class]bool
	terminal   io.Writer
	diagnosis  io.Writer
	useEscapes bool
}

func NewPrinter(include []Class, allowEscapes bool) (p Printer) {
	p = Printer{
		classes:    map[Class]bool{},
		terminal:   os.Stdout,
		diagnosis:  os.Stderr,
		useEscapes: allowEscapes,
	}
	for _, class := range include {
		p.classes[class] = true
	}
	return
}

// WithWriters redirects the output, mostly useful for capturing it in tests.
func (p Printer) WithWriters(terminal io.Writer, diagnosis io.Writer) Printer {
	p.terminal = terminal
	p.diagnosis = diagnosis
	return p
}

func (p Printer) Out(class Class, format string, values ...interface{}) {
	if !p.classes[class] {
		return
	}
	target := p.terminal
	if class == Error {
		target = p.diagnosis
	}
	fmt.Fprint(target, p.Sprintf(format, values...))
}

// Sprintf formats like fmt.Sprintf but drops SgrModifier arguments if escape sequences are not allowed.
func (p Printer) Sprintf(format string, values ...interface{}) string {
	if !p.useEscapes {
		filtered := make([]interface{}, len(values))
		for i, value := range values {
			if _, isModifier := value.(SgrModifier); isModifier {
				filtered[i] = ""
			} else {
				filtered[i] = value
			}
		}
		values = filtered
	}
	return fmt.Sprintf(format, values...)
}

func (p Printer) UsesEscapes() bool {
	return p.useEscapes
}
