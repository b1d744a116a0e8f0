package seatfeed

import (
	"sync"
	"time"
)

// SeatUpdate is broadcast to everyone watching an event's seat map.
type SeatUpdate struct {
	EventID        int64     `json:"event_id"`
	SeatNumbers    []int     `json:"seat_numbers"`
	Booked         bool      `json:"booked"`
	AvailableSeats int       `json:"available_seats"`
	At             time.Time `json:"at"`
}

const subscriberBuffer = 16

// Hub fans seat updates out to per-event subscribers. Slow subscribers are
// skipped rather than blocking the booking path.
type Hub struct {
	mu   sync.RWMutex
	subs map[int64]map[chan SeatUpdate]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[chan SeatUpdate]struct{})}
}

// Subscribe registers a watcher for eventID. The returned cancel func must be
// called exactly once; it closes the channel.
func (h *Hub) Subscribe(eventID int64) (<-chan SeatUpdate, func()) {
	ch := make(chan SeatUpdate, subscriberBuffer)

	h.mu.Lock()
	if h.subs[eventID] == nil {
		h.subs[eventID] = make(map[chan SeatUpdate]struct{})
	}
	h.subs[eventID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[eventID], ch)
			if len(h.subs[eventID]) == 0 {
				delete(h.subs, eventID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// PublishSeatUpdate implements the publisher interface the booking service
// depends on.
func (h *Hub) PublishSeatUpdate(eventID int64, seatNumbers []int, booked bool, availableSeats int) {
	update := SeatUpdate{
		EventID:        eventID,
		SeatNumbers:    seatNumbers,
		Booked:         booked,
		AvailableSeats: availableSeats,
		At:             time.Now().UTC(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[eventID] {
		select {
		case ch <- update:
		default:
			// subscriber buffer full, drop the update for this watcher
		}
	}
}

// Subscribers reports how many watchers an event currently has.
func (h *Hub) Subscribers(eventID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[eventID])
}
