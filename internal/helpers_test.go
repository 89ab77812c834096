package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertNoError(t *testing.T) {
	assert.NotPanics(t, func() { AssertNoError(nil, "nothing failed") })
	assert.PanicsWithError(t, "error unexpected because paths are absolute: boom", func() {
		AssertNoError(errors.New("boom"), "paths are absolute")
	})
}
