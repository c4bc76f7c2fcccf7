package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON_String(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"3s"`), &d))
	assert.Equal(t, 3*time.Second, d.Duration)
}

func TestDuration_UnmarshalJSON_Number(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`5000000000`), &d))
	assert.Equal(t, 5*time.Second, d.Duration)
}

func TestDuration_UnmarshalJSON_Invalid(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}

func TestDuration_MarshalJSON(t *testing.T) {
	d := Duration{Duration: 90 * time.Second}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}
