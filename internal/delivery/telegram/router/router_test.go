package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"payroll-bot/internal/delivery/telegram/router"
)

func TestParseCallback(t *testing.T) {
	cases := []struct {
		raw, key, payload string
	}{
		{"\fpick_month|2026-03", "pick_month", "2026-03"},
		{"payout_pick", "payout_pick", ""},
		{"\fpay_fortnight|2026-03-2", "pay_fortnight", "2026-03-2"},
		{"\fcal_day|16-2-2024", "cal_day", "16-2-2024"},
		{"key|a|b", "key", "a|b"},
	}
	for _, tc := range cases {
		key, payload := router.ParseCallback(tc.raw)
		assert.Equal(t, tc.key, key, tc.raw)
		assert.Equal(t, tc.payload, payload, tc.raw)
	}
}
