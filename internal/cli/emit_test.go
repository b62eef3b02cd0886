package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDishes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDishes(&buf, []string{"butter chicken", "naan"}))
	assert.Equal(t, "[\"butter chicken\", \"naan\"]\n", buf.String())
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "plain", message: "Image path not provided", want: `{"error": "Image path not provided"}`},
		{name: "quotes and backslash", message: `bad "C:\img"`, want: `{"error": "bad \"C:\\img\""}`},
		{name: "html kept", message: "a <b> & c", want: `{"error": "a <b> & c"}`},
		{name: "non-ascii escaped", message: "Image not found at /tmp/café.png", want: `{"error": "Image not found at /tmp/caf\u00e9.png"}`},
		{name: "astral escaped as surrogates", message: "🍛", want: `{"error": "\ud83c\udf5b"}`},
		{name: "control characters", message: "a\nb\tc", want: `{"error": "a\nb\tc"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteError(&buf, tt.message))
			assert.Equal(t, tt.want+"\n", buf.String())

			var decoded map[string]string
			require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
			assert.Equal(t, tt.message, decoded["error"])
		})
	}
}
