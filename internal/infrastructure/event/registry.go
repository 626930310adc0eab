package event

import (
	"strings"
	"sync"

	"github.com/kioskcrm/backend/internal/domain/shared"
)

// Wildcard subscribes a handler to every event type.
const Wildcard = "*"

// HandlerRegistry routes event types to handlers.
//
// A subscription is either an exact type ("kiosk.leased"), a family pattern
// ending in ".*" ("kiosk.*" matches "kiosk.leased" and "kiosk.status_changed")
// or Wildcard. Registering with no types is the same as Wildcard.
type HandlerRegistry struct {
	mu       sync.RWMutex
	exact    map[string][]shared.EventHandler
	families map[string][]shared.EventHandler // "kiosk." -> handlers
	wildcard []shared.EventHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		exact:    make(map[string][]shared.EventHandler),
		families: make(map[string][]shared.EventHandler),
	}
}

// Register subscribes handler to each pattern.
func (r *HandlerRegistry) Register(handler shared.EventHandler, patterns ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(patterns) == 0 {
		patterns = []string{Wildcard}
	}
	for _, p := range patterns {
		switch {
		case p == Wildcard:
			r.wildcard = appendOnce(r.wildcard, handler)
		case strings.HasSuffix(p, ".*"):
			family := strings.TrimSuffix(p, "*")
			r.families[family] = appendOnce(r.families[family], handler)
		default:
			r.exact[p] = appendOnce(r.exact[p], handler)
		}
	}
}

// Unregister removes handler from every subscription.
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wildcard = removeHandler(r.wildcard, handler)
	for _, m := range []map[string][]shared.EventHandler{r.exact, r.families} {
		for key, handlers := range m {
			if rest := removeHandler(handlers, handler); len(rest) > 0 {
				m[key] = rest
			} else {
				delete(m, key)
			}
		}
	}
}

// GetHandlers returns the handlers subscribed to eventType, each once:
// exact subscribers first, then family subscribers, then wildcards.
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []shared.EventHandler
	for _, h := range r.exact[eventType] {
		result = appendOnce(result, h)
	}
	for family, handlers := range r.families {
		if !strings.HasPrefix(eventType, family) {
			continue
		}
		for _, h := range handlers {
			result = appendOnce(result, h)
		}
	}
	for _, h := range r.wildcard {
		result = appendOnce(result, h)
	}
	return result
}

// Len returns the number of distinct subscribed handlers.
func (r *HandlerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []shared.EventHandler
	for _, h := range r.wildcard {
		all = appendOnce(all, h)
	}
	for _, m := range []map[string][]shared.EventHandler{r.exact, r.families} {
		for _, handlers := range m {
			for _, h := range handlers {
				all = appendOnce(all, h)
			}
		}
	}
	return len(all)
}

func appendOnce(handlers []shared.EventHandler, h shared.EventHandler) []shared.EventHandler {
	for _, existing := range handlers {
		if existing == h {
			return handlers
		}
	}
	return append(handlers, h)
}

func removeHandler(handlers []shared.EventHandler, target shared.EventHandler) []shared.EventHandler {
	out := handlers[:0]
	for _, h := range handlers {
		if h != target {
			out = append(out, h)
		}
	}
	return out
}
