package form

import (
	"testing"

	"fieldtask/internal/device"

	"github.com/stretchr/testify/assert"
)

func TestComposeLocationName(t *testing.T) {
	tests := []struct {
		name string
		addr *device.Address
		want string
	}{
		{
			name: "all segments",
			addr: &device.Address{Name: "Plaza de Armas", District: "Centro", City: "Santiago", Region: "RM", Country: "Chile"},
			want: "Plaza de Armas, Centro, Santiago, RM, Chile",
		},
		{
			name: "blank segments skipped",
			addr: &device.Address{Name: "Plaza de Armas", City: "Santiago", Country: "Chile"},
			want: "Plaza de Armas, Santiago, Chile",
		},
		{
			name: "repeated values keep first occurrence",
			addr: &device.Address{Name: "Plaza", District: "Plaza", City: "Santiago"},
			want: "Plaza, Santiago",
		},
		{
			name: "whitespace-only segments skipped",
			addr: &device.Address{Name: "  ", City: " Santiago ", Country: ""},
			want: "Santiago",
		},
		{
			name: "nil address falls back",
			addr: nil,
			want: LocationFallback,
		},
		{
			name: "empty address falls back",
			addr: &device.Address{},
			want: LocationFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposeLocationName(tt.addr))
		})
	}
}
