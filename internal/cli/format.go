package cli

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// groupDigits renders n with thousands separators.
func groupDigits(n *big.Int) string {
	s := n.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var sb strings.Builder
	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sign + sb.String()
}

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

func formatBytes(n *big.Int) string {
	f := new(big.Float).SetInt(n)
	unit := 0
	k := big.NewFloat(1024)
	for unit < len(byteUnits)-1 && f.Cmp(k) >= 0 {
		f.Quo(f, k)
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%s B", n.String())
	}
	v, _ := f.Float64()
	if unit == len(byteUnits)-1 && f.Cmp(k) >= 0 {
		return fmt.Sprintf("%.3g %s", v, byteUnits[unit])
	}
	return fmt.Sprintf("%.2f %s", v, byteUnits[unit])
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.0f/s", rate)
}

func groupInt(n int64) string {
	return groupDigits(big.NewInt(n))
}
