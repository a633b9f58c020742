package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmountCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "150", want: 15000},
		{in: "99.5", want: 9950},
		{in: "12.75", want: 1275},
		{in: "0.01", want: 1},
		{in: "0", want: 0},
		{in: " 20 ", want: 2000},
		{in: "12.345", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "1.x", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseAmountCents(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		assert.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "150.00", FormatCents(15000))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "-3.50", FormatCents(-350))
	assert.Equal(t, "KES 12.75", FormatAmount("KES", 1275))
	assert.Equal(t, "12.75", FormatAmount("", 1275))
}

func TestContributionStatusIsTerminal(t *testing.T) {
	assert.False(t, ContributionStatusPending.IsTerminal())
	assert.True(t, ContributionStatusConfirmed.IsTerminal())
	assert.True(t, ContributionStatusRejected.IsTerminal())
}
