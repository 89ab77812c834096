package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortcuts(t *testing.T) {
	letters, display := shortcuts([]string{"Yes", "No", "Yonder"}, false)
	assert.Equal(t, []string{"[Y]es", "[N]o", "Y[o]nder"}, display)
	assert.Equal(t, "Yes", letters['y'])
	assert.Equal(t, "Yes", letters['Y'])
	assert.Equal(t, "No", letters['n'])
	assert.Equal(t, "Yonder", letters['O'])

	_, fancy := shortcuts([]string{"Yes"}, true)
	assert.Equal(t, []string{"\x1B[1m\x1B[4mY\x1B[0mes"}, fancy)
}

func TestShortcutsWithoutFreeLetter(t *testing.T) {
	letters, display := shortcuts([]string{"ab", "ba"}, false)
	assert.Equal(t, []string{"[a]b", "[b]a"}, display)
	assert.Len(t, letters, 4)
}

func TestAutoChooseDefaultOption(t *testing.T) {
	choose := AutoChooseDefaultOption(true)
	assert.Equal(t, "Yes", choose("Are you sure to remove these 2 images?", []string{"Yes", "No"}, false))
}
