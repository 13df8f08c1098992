package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiry(t *testing.T) {
	testCases := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "24h", want: 24 * time.Hour},
		{input: "1h", want: time.Hour},
		{input: "90m", want: 90 * time.Minute},
		{input: "1ms", want: time.Millisecond},
		{input: " 1h30m ", want: 90 * time.Minute},
		{input: "7d", want: 7 * 24 * time.Hour},
		{input: "1.5d", want: 36 * time.Hour},
		{input: "2w", want: 14 * 24 * time.Hour},
		{input: "3600", want: time.Hour},
		{input: "", wantErr: true},
		{input: "0", wantErr: true},
		{input: "1us", wantErr: true},
		{input: "-5m", wantErr: true},
		{input: "xd", wantErr: true},
		{input: "tomorrow", wantErr: true},
		{input: "9223372036", want: 9223372036 * time.Second},
		{input: "9223372037", wantErr: true},
		{input: "18446744074", wantErr: true},
		{input: "9999999999999", wantErr: true},
		{input: "NaNd", wantErr: true},
		{input: "Infw", wantErr: true},
		{input: "-Infd", wantErr: true},
		{input: "1e300d", wantErr: true},
		{input: "0x1p62w", wantErr: true},
		{input: "99999999999h", wantErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			got, err := ParseExpiry(testCase.input)
			if testCase.wantErr {
				assert.ErrorIs(t, err, ErrInvalidExpiry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}
