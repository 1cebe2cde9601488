package trade

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const tradeCodePrefix = "TP"

var tradeCodePattern = regexp.MustCompile(`^TP[0-9A-F]{8}$`)

// NewTradeCode returns "TP" followed by 8 uppercase hex characters.
func NewTradeCode() string {
	return tradeCodePrefix + strings.ToUpper(uuid.NewString()[:8])
}

func IsTradeCode(code string) bool {
	return tradeCodePattern.MatchString(code)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
