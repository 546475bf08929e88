package filesystem

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// timeLayout matches ISO-8601 with millisecond precision in UTC
const timeLayout = "2006-01-02T15:04:05.000Z"

// FormatBytes renders a byte count scaled by 1024 with at most two decimals.
// Zero is "0 Bytes"; sizes beyond TB stay in TB.
func FormatBytes(n int64) string {
	if n == 0 {
		return "0 Bytes"
	}

	value := float64(n)
	unit := 0
	for (value >= 1024 || value <= -1024) && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 2, 64), 64)
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[unit]
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func textResult(text string) (*types.Result, error) {
	return &types.Result{Text: text}, nil
}

// jsonResult pretty-prints v with two-space indentation
func jsonResult(v interface{}) (*types.Result, error) {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return &types.Result{Text: string(data)}, nil
}
