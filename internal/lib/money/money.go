// Package money форматирует денежные суммы для отображения в таблице.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const fractionDigits = 3

var printer = message.NewPrinter(language.English)

// Format возвращает сумму с префиксом "$", разделителями разрядов
// и ровно тремя знаками после запятой: 1234.5 -> "$1,234.500".
func Format(amount float64) string {
	return "$" + printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(fractionDigits),
		number.MaxFractionDigits(fractionDigits),
	))
}
