package internal

import "fmt"

// AssertNoError panics on errors that cannot happen unless the program itself is broken.
func AssertNoError(err error, because string) {
	if err != nil {
		panic(fmt.Errorf("error unexpected because %s: %w", because, err))
	}
}
