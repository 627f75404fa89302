package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Severity
		wantErr bool
	}{
		{name: "success", input: "success", want: SeveritySuccess},
		{name: "error", input: "error", want: SeverityError},
		{name: "warning", input: "warning", want: SeverityWarning},
		{name: "info", input: "info", want: SeverityInfo},
		{name: "mixed case and spaces", input: "  WaRnInG ", want: SeverityWarning},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "fatal", wantErr: true},
		{name: "abbreviation", input: "warn", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSeverity)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverity_Valid(t *testing.T) {
	for _, s := range Severities() {
		assert.True(t, s.Valid(), s.String())
	}
	assert.False(t, Severity("").Valid())
	assert.False(t, Severity("Info").Valid())
}
