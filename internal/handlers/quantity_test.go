package handlers_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopora-backend/internal/handlers"
)

func TestQuantityUnmarshal(t *testing.T) {
	type payload struct {
		Quantity handlers.Quantity `json:"quantity"`
	}

	tests := []struct {
		name    string
		json    string
		wantSet bool
		want    int
		wantErr bool
	}{
		{"number", `{"quantity": 5}`, true, 5, false},
		{"string number", `{"quantity": "5"}`, true, 5, false},
		{"string with spaces", `{"quantity": " 2 "}`, true, 2, false},
		{"zero", `{"quantity": 0}`, true, 0, false},
		{"negative", `{"quantity": -3}`, true, -3, false},
		{"float with zero fraction", `{"quantity": 4.0}`, true, 4, false},
		{"absent", `{}`, false, 0, false},
		{"null", `{"quantity": null}`, false, 0, false},
		{"fractional", `{"quantity": 2.5}`, false, 0, true},
		{"non-numeric string", `{"quantity": "abc"}`, false, 0, true},
		{"bool", `{"quantity": true}`, false, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := json.Unmarshal([]byte(tt.json), &p)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSet, p.Quantity.Set())
			if tt.wantSet {
				assert.Equal(t, tt.want, p.Quantity.Value(99))
			} else {
				assert.Equal(t, 99, p.Quantity.Value(99))
			}
		})
	}
}
