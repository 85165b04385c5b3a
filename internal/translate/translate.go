// Package translate renders the messages chip8 shows to people in the
// language of the host locale. Message keys are en-US fmt format strings.
package translate

import (
	"errors"
	"io"
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// Prefix starts every log line written by the chip8 commands.
const Prefix = "chip8: "

var printer = newPrinter()

func newPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("%slocale: %v", Prefix, err)
	}
	// en-US last, so it only wins when nothing the host asks for matches.
	locales = append(locales, "en-US")

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From formats key for the current locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Error is From as an error. Unlike fmt.Errorf it does not wrap.
func Error(key message.Reference, args ...any) error {
	return errors.New(printer.Sprintf(key, args...))
}

// Fprintf writes key, formatted for the current locale, to w.
func Fprintf(w io.Writer, key message.Reference, args ...any) (int, error) {
	return printer.Fprintf(w, key, args...)
}
