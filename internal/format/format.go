// Package format turns raw leaderboard values into display strings.
//
// Every function here is total: bad input maps to a fixed fallback label
// instead of an error.
package format

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// UnknownTime is shown for missing or unparseable timestamps.
const UnknownTime = "unknown"

// ZeroVolume is shown for volumes that do not parse as a decimal.
const ZeroVolume = "$0"

// timeNow is a variable for time.Now to enable deterministic testing
var timeNow = time.Now

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)

	printer = message.NewPrinter(language.English)
)

// Volume formats a USD volume transported as a decimal string.
//
//	>= 1,000,000  -> $N.NNM
//	>= 1,000      -> $N.NK
//	otherwise     -> $N (grouped, at most 2 decimals)
func Volume(raw string) string {
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return ZeroVolume
	}
	switch {
	case v.GreaterThanOrEqual(million):
		return "$" + v.Div(million).StringFixed(2) + "M"
	case v.GreaterThanOrEqual(thousand):
		return "$" + v.Div(thousand).StringFixed(1) + "K"
	}
	return "$" + printer.Sprint(number.Decimal(v.Round(2).InexactFloat64(), number.MaxFractionDigits(2)))
}

// Count formats a trade count with thousands separators.
func Count(n int64) string {
	return printer.Sprint(number.Decimal(n))
}

// RelativeTime renders how long ago ts happened, bucketed into minutes,
// hours or days. An empty or unparseable ts yields UnknownTime.
func RelativeTime(ts string) string {
	if ts == "" {
		return UnknownTime
	}
	t, err := cast.ToTimeE(ts)
	if err != nil || t.IsZero() {
		return UnknownTime
	}
	minutes := int64(timeNow().Sub(t) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case minutes < 24*60:
		return fmt.Sprintf("%dh ago", minutes/60)
	}
	return fmt.Sprintf("%dd ago", minutes/(24*60))
}

// TruncateAddress keeps the first 6 and last 4 characters of addr.
// Addresses too short to shorten are returned unchanged.
func TruncateAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// ChecksumAddress returns the EIP-55 form of a hex address. Anything that
// is not a 20-byte hex address is returned as-is.
func ChecksumAddress(addr string) string {
	if !common.IsHexAddress(addr) {
		return addr
	}
	return common.HexToAddress(addr).Hex()
}
