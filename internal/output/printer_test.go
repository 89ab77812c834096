package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterClasses(t *testing.T) {
	var terminal, diagnosis bytes.Buffer
	p := NewPrinter([]Class{Required, Error}, false).WithWriters(&terminal, &diagnosis)

	p.Out(Required, "requested %d\n", 1)
	p.Out(Normal, "noteworthy\n")
	p.Out(Verbose, "talkative\n")
	p.Out(Error, "broken\n")

	assert.Equal(t, "requested 1\n", terminal.String())
	assert.Equal(t, "broken\n", diagnosis.String())
}

func TestPrinterEscapes(t *testing.T) {
	plain := NewPrinter(nil, false)
	fancy := NewPrinter(nil, true)

	assert.Equal(t, "a.png [unused]", plain.Sprintf("%s%s [unused]%s", Red, "a.png", Reset))
	assert.Equal(t, "\x1B[31ma.png [unused]\x1B[0m", fancy.Sprintf("%s%s [unused]%s", Red, "a.png", Reset))
	assert.False(t, plain.UsesEscapes())
	assert.True(t, fancy.UsesEscapes())
}
