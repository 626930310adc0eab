package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_GetHandlers(t *testing.T) {
	r := NewHandlerRegistry()
	exact := newTestHandler()
	family := newTestHandler()
	all := newTestHandler()
	r.Register(exact, "kiosk.leased")
	r.Register(family, "kiosk.*")
	r.Register(all)

	tests := []struct {
		eventType string
		want      []*testHandler
	}{
		{"kiosk.leased", []*testHandler{exact, family, all}},
		{"kiosk.sold", []*testHandler{family, all}},
		{"kioskx.sold", []*testHandler{all}},
		{"order.created", []*testHandler{all}},
	}
	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			got := r.GetHandlers(tt.eventType)
			assert.Len(t, got, len(tt.want))
			for i, h := range tt.want {
				assert.Same(t, h, got[i])
			}
		})
	}
}

func TestHandlerRegistry_DeliversOnce(t *testing.T) {
	r := NewHandlerRegistry()
	h := newTestHandler()
	r.Register(h, "lead.converted", "lead.*", Wildcard)
	r.Register(h, "lead.converted")

	assert.Len(t, r.GetHandlers("lead.converted"), 1)
	assert.Equal(t, 1, r.Len())
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	r := NewHandlerRegistry()
	keep := newTestHandler()
	drop := newTestHandler()
	r.Register(keep, "order.*")
	r.Register(drop, "order.*", "order.created", Wildcard)

	r.Unregister(drop)

	got := r.GetHandlers("order.created")
	assert.Len(t, got, 1)
	assert.Same(t, keep, got[0])
	assert.Equal(t, 1, r.Len())
	assert.NotContains(t, r.exact, "order.created")
}
