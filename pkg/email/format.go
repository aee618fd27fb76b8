package email

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NotAvailable is shown for optional values that were not supplied.
const NotAvailable = "N/A"

// FormatAmount renders a dollar amount with en-US digit grouping and up to
// three fraction digits, e.g. "$1,234.5". Nil yields NotAvailable.
func FormatAmount(amount *float64) string {
	if amount == nil {
		return NotAvailable
	}
	p := message.NewPrinter(language.AmericanEnglish)
	return "$" + p.Sprint(number.Decimal(*amount, number.MaxFractionDigits(3)))
}

// timestampLayouts follow the short date-time style each site language uses.
var timestampLayouts = map[string]string{
	"en": "1/2/2006, 3:04:05 PM",
	"es": "2/1/2006, 15:04:05",
	"pt": "02/01/2006, 15:04:05",
	"it": "2/1/2006, 15:04:05",
	"ru": "02.01.2006, 15:04:05",
	"zh": "2006/1/2 15:04:05",
}

// FormatTimestamp renders t in UTC using the date style of lang, falling
// back to English.
func FormatTimestamp(t time.Time, lang string) string {
	layout, ok := timestampLayouts[strings.ToLower(lang)]
	if !ok {
		layout = timestampLayouts["en"]
	}
	return t.UTC().Format(layout) + " UTC"
}
