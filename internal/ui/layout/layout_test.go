package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{500 * time.Millisecond, "0:01"},
		{30 * time.Second, "0:30"},
		{90 * time.Second, "1:30"},
		{10 * time.Minute, "10:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCountdown(tt.in), tt.in.String())
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "42s", FormatDuration(42*time.Second))
	assert.Equal(t, "1m05s", FormatDuration(65*time.Second))
	assert.Equal(t, "2h03m", FormatDuration(2*time.Hour+3*time.Minute))
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(79, 30))
	assert.True(t, IsTooSmall(100, 23))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestRenderHeaderContainsParts(t *testing.T) {
	h := RenderHeader("Quiz", "ada", 100)
	assert.Contains(t, h, "flashquiz")
	assert.Contains(t, h, "Quiz")
	assert.Contains(t, h, "ada")
}
