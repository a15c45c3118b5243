package mailbox

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    Type
		wantErr bool
	}{
		{"request help", "request_help", TypeRequestHelp, false},
		{"share data", "share_data", TypeShareData, false},
		{"task complete", "task_complete", TypeTaskComplete, false},
		{"error report", "error_report", TypeErrorReport, false},
		{"broadcast", "broadcast", TypeBroadcast, false},
		{"unknown name", "gossip", 0, true},
		{"empty name", "", 0, true},
		{"case sensitive", "Share_Data", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseType(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
			assert.True(t, got.IsValid())
		})
	}
}

func TestType_ZeroValueInvalid(t *testing.T) {
	t.Parallel()
	var zero Type
	assert.False(t, zero.IsValid())
}

func TestType_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(TypeErrorReport)
	require.NoError(t, err)
	assert.JSONEq(t, `"error_report"`, string(data))

	var decoded Type
	require.NoError(t, json.Unmarshal([]byte(`"task_complete"`), &decoded))
	assert.Equal(t, TypeTaskComplete, decoded)

	// Free-form strings are rejected, not passed through.
	err = json.Unmarshal([]byte(`"anything_else"`), &decoded)
	require.ErrorIs(t, err, ErrUnknownType)

	_, err = json.Marshal(Type(42))
	require.Error(t, err)
}
