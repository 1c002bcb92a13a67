package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// GetQuantity answers nil when quantity is absent or not a number, leaving the
// default to the service. Non-positive numbers are passed through.
func GetQuantity(c *gin.Context) *int {
	raw, ok := c.GetQuery("quantity")
	if !ok {
		return nil
	}
	q, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &q
}

// GetCursor parses the cursor flag, either RFC 3339 or unix milliseconds.
func GetCursor(c *gin.Context) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query("cursor"))
	if raw == "" {
		return nil, nil
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		t := time.UnixMilli(ms).UTC()
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetPopulate accepts repeated, comma or space separated populate params.
func GetPopulate(c *gin.Context) []string {
	var fields []string
	for _, v := range c.QueryArray("populate") {
		fields = append(fields, strings.Fields(strings.ReplaceAll(v, ",", " "))...)
	}
	return fields
}

func GetLean(c *gin.Context) *bool {
	raw, ok := c.GetQuery("lean")
	if !ok {
		return nil
	}
	lean, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &lean
}
