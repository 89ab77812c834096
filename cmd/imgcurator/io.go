package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/n2code/imgcurator"
	"golang.org/x/term"
)

// shortcuts assigns every option the first letter not yet taken by a previous option (case-insensitive)
func shortcuts(options []string, allowEscapeSequences bool) (letterToChoice map[rune]string, displayOptions []string) {
	letterToChoice = make(map[rune]string)
NextOption:
	for _, option := range options {
		for i, letter := range option {
			if _, taken := letterToChoice[unicode.ToLower(letter)]; taken {
				continue
			}
			letterToChoice[unicode.ToLower(letter)] = option
			letterToChoice[unicode.ToUpper(letter)] = option
			highlighted := fmt.Sprintf("[%c]", letter)
			if allowEscapeSequences {
				highlighted = fmt.Sprintf("\x1B[1m\x1B[4m%c\x1B[0m", letter)
			}
			displayOptions = append(displayOptions, option[:i]+highlighted+option[i+len(string(letter)):])
			continue NextOption
		}
		displayOptions = append(displayOptions, option) //no free letter left, not selectable
	}
	return
}

// PromptUser asks on the terminal and waits for a single key press (raw mode) or a letter confirmed by ENTER.
// Cancelling the context (e.g. by an interrupt signal) or pressing Ctrl+C aborts the choice.
func PromptUser(ctx context.Context, allowEscapeSequences bool) imgcurator.RequestChoice {
	return func(request string, options []string, cleanup bool) (choice string) {
		letterToChoice, displayOptions := shortcuts(options, allowEscapeSequences)

		key := make(chan rune)
		interrupt := make(chan struct{}, 1)

		rawMode := false
		out := func(text string) {
			fmt.Fprint(os.Stdout, text)
		}
		rawOut := func(text string) {
			if rawMode {
				fmt.Fprint(os.Stdout, text)
			}
		}

		if allowEscapeSequences {
			if oldTermState, err := term.MakeRaw(int(os.Stdin.Fd())); err == nil {
				rawMode = true
				defer term.Restore(int(os.Stdin.Fd()), oldTermState)
			} // else terminal is not raw, i.e. ENTER is required to confirm input -> acceptable fallback
		}
		waitForKey := func() {
			reader := bufio.NewReaderSize(os.Stdin, 1)
			input, err := reader.ReadByte()
			if err == io.EOF {
				interrupt <- struct{}{}
				return
			}
			if !rawMode && reader.Buffered() > 0 {
				if extra, _ := reader.ReadByte(); extra != '\n' && extra != '\r' {
					key <- '?'
					reader.Reset(os.Stdin)
					return
				}
			}
			reader.Reset(os.Stdin)
			if rawMode && input == 3 { //Ctrl+C
				interrupt <- struct{}{}
			} else {
				rawOut(fmt.Sprintf("%c", unicode.ToUpper(rune(input))))
				key <- rune(input)
			}
		}

		prompt := fmt.Sprintf("%s (%s): ", request, strings.Join(displayOptions, " / "))
		out(prompt)
		for {
			go waitForKey()
			select {
			case letterPressed := <-key:
				if selection, found := letterToChoice[letterPressed]; found {
					if cleanup {
						rawOut("\033[2K\r") //clear line
					} else {
						rawOut("\r\n")
					}
					return selection
				}
				rawOut("\a\033[1D") //bell and move cursor left by 1
				if !rawMode {
					out(prompt)
				}
			case <-interrupt:
				out("<CANCELLED>\r\n")
				return imgcurator.ChoiceAborted
			case <-ctx.Done():
				out("<CANCELLED>\r\n")
				return imgcurator.ChoiceAborted
			}
		}
	}
}

// AutoChooseDefaultOption picks the first option without asking, the request is echoed unless quiet.
func AutoChooseDefaultOption(quiet bool) imgcurator.RequestChoice {
	return func(request string, options []string, cleanup bool) string {
		defaultChoice := options[0] //by definition of type RequestChoice
		if !cleanup && !quiet {
			fmt.Fprintf(os.Stdout, "%s => [%s]\n", request, strings.ToUpper(defaultChoice))
		}
		return defaultChoice
	}
}
