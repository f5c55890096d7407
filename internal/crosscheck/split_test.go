package crosscheck_test

import (
	"strings"
	"testing"

	"nobaidu/internal/crosscheck"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		wantQuery string
		wantProbe string
	}{
		{
			name:      "fragments around the midpoint",
			text:      "经过多年的技术积累，该团队终于在本次比赛中取得了突破性的进展，赢得了广泛关注与好评。",
			wantQuery: "队终于在本次比赛中",
			wantProbe: "取得了突破",
		},
		{
			name:      "split position is at least twenty",
			text:      "abcdefghijklmnopqrstuvwxyz",
			wantQuery: "lmnopqrst",
			wantProbe: "uvwxy",
		},
		{
			name:      "short text yields empty probe",
			text:      "only fifteen ch",
			wantQuery: "n ch",
			wantProbe: "",
		},
		{
			name:      "fragments are trimmed",
			text:      strings.Repeat("a", 16) + "   b" + "  " + strings.Repeat("c", 20),
			wantQuery: "aaaa   b",
			wantProbe: "cccc",
		},
		{
			name:      "empty text",
			text:      "",
			wantQuery: "",
			wantProbe: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			query, probe := crosscheck.Split(tt.text)

			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantProbe, probe)
		})
	}
}
