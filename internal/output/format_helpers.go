package output

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

var hundred = decimal.NewFromInt(100)

// FormatAmount formats a trillion-yen amount with digit grouping and one decimal.
func FormatAmount(amount decimal.Decimal) string {
	return printer.Sprint(number.Decimal(amount.Round(1).InexactFloat64(), number.Scale(1)))
}

// FormatPercentage formats a value already expressed in percent with 2 decimals.
func FormatPercentage(pct decimal.Decimal) string { return pct.StringFixed(2) + "%" }

// FormatRate formats a fraction (0.025) as a percentage ("2.50%").
func FormatRate(rate decimal.Decimal) string { return FormatPercentage(rate.Mul(hundred)) }

// FormatSigned prefixes non-negative amounts with "+".
func FormatSigned(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return FormatAmount(amount)
	}
	return "+" + FormatAmount(amount)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

// fixed2 and fixedRate keep CSV cells locale-free.
func fixed2(d decimal.Decimal) string { return d.StringFixed(2) }

func fixedRate(rate decimal.Decimal) string { return rate.Mul(hundred).StringFixed(3) }
