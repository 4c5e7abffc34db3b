// Package translate renders user-facing messages in the caller's locale.
package translate

//go:generate go tool gotext -srclang=en-US update -out=catalog.go -lang=en-US github.com/ezrec/baby/cpu github.com/ezrec/baby/io github.com/ezrec/baby/emulator

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// FALLBACK is the source language of every message.
const FALLBACK = "en-US"

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("baby: locale: %v", err)
	}

	SetLocale(locales...)
}

// SetLocale selects the best match from a list of BCP 47 locales, or the
// fallback if none are given.
func SetLocale(locales ...string) {
	if len(locales) == 0 {
		locales = []string{FALLBACK}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
