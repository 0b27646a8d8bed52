package listvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "empty", value: "", want: nil},
		{name: "single", value: "aaaa", want: []string{"aaaa"}},
		{name: "comma separated", value: "aaaa, bbbb,cccc", want: []string{"aaaa", "bbbb", "cccc"}},
		{name: "multi-line with comments", value: "\n  # Maths [3]\n  aaaa\n  ; skipped\n  bbbb\tcccc\n\n", want: []string{"aaaa", "bbbb", "cccc"}},
		{name: "only comments", value: "# one\n; two", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.value))
		})
	}
}
