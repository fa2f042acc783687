package ws

import (
	"encoding/json"
	"log/slog"

	"github.com/cocoa-pos/api/internal/enum"
	"github.com/cocoa-pos/api/internal/service"
)

// Publisher pushes floor state to subscribed screens. It implements
// service.Notifier: broadcasts go through the hub's buffered channel and
// never block a floor mutation.
type Publisher struct {
	hub   *Hub
	floor *service.Floor
}

// NewPublisher creates a Publisher over the hub. Bind must be called with
// the floor before the first broadcast (the floor needs the publisher at
// construction and vice versa).
func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

// Bind attaches the floor the publisher reads snapshots from.
func (p *Publisher) Bind(floor *service.Floor) { p.floor = floor }

// KnownScreen reports whether the screen name is a valid subscription.
func (p *Publisher) KnownScreen(screen string) bool {
	switch screen {
	case enum.ScreenMesas, enum.ScreenCocina, enum.ScreenCocina2, enum.ScreenServicio:
		return true
	}
	return false
}

// FloorChanged pushes fresh snapshots to every screen that has clients.
func (p *Publisher) FloorChanged() {
	if p.floor == nil {
		return
	}
	for _, screen := range p.hub.Screens() {
		p.PushScreen(screen)
	}
}

// TableAttention tells every subscribed screen that a table has been
// waiting too long.
func (p *Publisher) TableAttention(table service.Table) {
	payload, err := json.Marshal(map[string]any{
		"table_id":   table.ID,
		"table_name": table.Name,
	})
	if err != nil {
		return
	}
	for _, screen := range p.hub.Screens() {
		p.hub.BroadcastToScreen(screen, Event{Type: "attention", Screen: screen, Payload: payload})
	}
}

// PushScreen broadcasts the current snapshot for one screen.
func (p *Publisher) PushScreen(screen string) {
	if p.floor == nil {
		return
	}
	var (
		payload any
		err     error
	)
	switch screen {
	case enum.ScreenMesas:
		payload = p.floor.Overview()
	default:
		payload, err = p.floor.VisibleItemsForStation(screen)
		if err != nil {
			return
		}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("marshal screen snapshot", "screen", screen, "err", err)
		return
	}
	p.hub.BroadcastToScreen(screen, Event{Type: "snapshot", Screen: screen, Payload: raw})
}
