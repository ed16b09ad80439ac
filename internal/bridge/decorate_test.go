package bridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"logtable-backend/internal/bridge"
	"logtable-backend/internal/model"
)

func TestDecorateRow(t *testing.T) {
	tests := []struct {
		name         string
		severityType string
		expected     string
	}{
		{name: "Critical", severityType: "ALERT", expected: `<span class="label important">ALERT</span>`},
		{name: "Warning", severityType: "ERROR", expected: `<span class="label warning">ERROR</span>`},
		{name: "Notice", severityType: "NOTICE", expected: `<span class="label notice">NOTICE</span>`},
		{name: "Success", severityType: "INFORMATIONAL", expected: `<span class="label success">INFORMATIONAL</span>`},
		{name: "Unknown has empty modifier", severityType: "DEBUG", expected: `<span class="label ">DEBUG</span>`},
		{name: "Markup is escaped", severityType: `<b>"x"</b>`, expected: `<span class="label ">&lt;b&gt;&#34;x&#34;&lt;/b&gt;</span>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bridge.DecorateRow(model.LogRecord{SeverityType: tt.severityType, Message: "ignored"})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecorateRow_Idempotent(t *testing.T) {
	record := model.LogRecord{Created: "2012-03-14 09:26:53", Source: "API", SeverityType: "WARNING", Message: "disk 91% full"}

	assert.Equal(t, bridge.DecorateRow(record), bridge.DecorateRow(record))
}
