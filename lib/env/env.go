package env

import (
	"os"
	"strconv"
)

func Debug() bool {
	return os.Getenv("DEBUG") != ""
}

// Timeout is the number of seconds set in MCD_TIMEOUT, used to bound a single compile.
func Timeout() (int, bool) {
	if s := os.Getenv("MCD_TIMEOUT"); s != "" {
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return int(i), true
		}
	}
	return -1, false
}

// FontMetrics reports whether text is measured with real font metrics. MCD_FONT_METRICS=0
// switches every caller to the fixed width fallback ruler.
func FontMetrics() bool {
	return os.Getenv("MCD_FONT_METRICS") != "0"
}
