package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-x", "other"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-v"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag followed by another flag",
			args:    []string{"-c", "-v"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "1", "-b"},
			allowed: []string{"-z"},
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterArgs(tc.args, tc.allowed))
		})
	}
}
