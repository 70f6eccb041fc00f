package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"milliseconds", `"300ms"`, 300 * time.Millisecond, false},
		{"seconds", `"30s"`, 30 * time.Second, false},
		{"compound", `"1h30m"`, 90 * time.Minute, false},
		{"empty string", `""`, 0, false},
		{"garbage", `"soon"`, 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var d Duration
			err := yaml.Unmarshal([]byte(tt.input), &d)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Duration())
		})
	}
}

func TestDuration_MarshalYAML(t *testing.T) {
	t.Parallel()

	out, err := yaml.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, "1m30s\n", string(out))
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"5s"`), &d))
	assert.Equal(t, 5*time.Second, d.Duration())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.Equal(t, time.Duration(0), d.Duration())
}

func TestDuration_MarshalJSON(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(Duration(250 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, `"250ms"`, string(out))
}
