package imgcurator

import (
	"github.com/n2code/imgcurator/internal/output"
	"github.com/n2code/imgcurator/internal/reference"
	"github.com/n2code/imgcurator/internal/rename"
)

type VerbosityLevel int

const (
	DefaultVerbosity VerbosityLevel = iota //normal level of information, all noteworthy facts without too much noise
	VerboseMode                            //exhaustive information about what is happening, repeating context
	QuietMode                              //only output errors and information that was explicitly requested (-> Print* functions)
)

// CreateConfig holds a set of common configuration switches that concern all calls to the imgcurator API.
// The zero value is a sensible default.
type CreateConfig struct {
	Verbosity VerbosityLevel
	Plain     bool                //no terminal escape sequences
	NewSuffix string              //inserted before the extension of the rewritten document, "_new" if empty
	Extractor reference.Extractor //pattern-based if nil
	Printer   *output.Printer     //overrides Verbosity and Plain, mostly useful for capturing output in tests
}

// New creates a handle with the given settings.
func New(config CreateConfig) Curator {
	return makeCurator(config)
}

type curator struct {
	printer   output.Printer
	extractor reference.Extractor
	suffix    string
}

func makeCurator(config CreateConfig) (instance *curator) {
	instance = &curator{extractor: config.Extractor, suffix: config.NewSuffix}
	if instance.extractor == nil {
		instance.extractor = reference.PatternExtractor{}
	}
	if instance.suffix == "" {
		instance.suffix = rename.DefaultSuffix
	}
	if config.Printer != nil {
		instance.printer = *config.Printer
		return
	}

	classes := []output.Class{output.Required, output.Error}
	switch config.Verbosity {
	case VerboseMode:
		classes = append(classes, output.Verbose)
		fallthrough
	case DefaultVerbosity:
		classes = append(classes, output.Normal)
	}
	instance.printer = output.NewPrinter(classes, !config.Plain)
	return
}

func (c *curator) Print(class output.Class, format string, a ...interface{}) {
	c.printer.Out(class, format, a...)
}
