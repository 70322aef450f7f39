package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,098.8", FormatAmount(decimal.RequireFromString("1098.8")))
	assert.Equal(t, "75.0", FormatAmount(decimal.NewFromInt(75)))
	assert.Contains(t, FormatAmount(decimal.RequireFromString("-1234.56")), "1,234.6")
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "12.35%", FormatPercentage(decimal.NewFromFloat(12.3456)))
	assert.Equal(t, "2.50%", FormatRate(decimal.RequireFromString("0.025")))
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+1.2", FormatSigned(decimal.RequireFromString("1.2")))
	assert.NotContains(t, FormatSigned(decimal.RequireFromString("-3.4")), "+")
}

func TestCellHelpers(t *testing.T) {
	assert.Equal(t, "42", intToString(42))
	assert.Equal(t, "true", boolToString(true))
	assert.Equal(t, "1.046", fixedRate(decimal.RequireFromString("0.0104555")))
	assert.Equal(t, "8.80", fixed2(decimal.RequireFromString("8.8")))
}
