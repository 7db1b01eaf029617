package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in       string
		wantType CommandType
		wantArgs []string
	}{
		{"/summary", CommandSummary, nil},
		{"  SICK ", CommandSick, nil},
		{"/for_sale", CommandForSale, nil},
		{"/status a001-B", CommandStatus, []string{"a001-B"}},
		{"/due 14", CommandDue, []string{"14"}},
		{"/help", CommandHelp, nil},
		{"/eggs 120", CommandUnknown, []string{"120"}},
		{"", CommandUnknown, nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cmd := ParseCommand(tt.in)
			assert.Equal(t, tt.wantType, cmd.Type)
			assert.Equal(t, tt.wantArgs, cmd.Args)
			assert.Equal(t, tt.in, cmd.Raw)
		})
	}
}
