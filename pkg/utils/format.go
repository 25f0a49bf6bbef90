package utils

import (
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DateLayout     = "2006-01-02"
	displayLayout  = "02 January 2006"
	currencySymbol = "₽"
)

// FormatAmount groups digits the way ru-RU does (45000 -> "45 000").
func FormatAmount(amount int) string {
	return message.NewPrinter(language.Russian).Sprintf("%d", amount)
}

// FormatPrice is FormatAmount followed by the rouble sign.
func FormatPrice(amount int) string {
	return FormatAmount(amount) + " " + currencySymbol
}

// FormatDate renders day, full month name (genitive) and year in Russian.
func FormatDate(t time.Time) string {
	return monday.Format(t, displayLayout, monday.LocaleRuRU)
}
