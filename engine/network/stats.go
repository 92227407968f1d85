package network

import (
	"sync/atomic"
	"time"
)

// Stats counts connections and records across every transport.
type Stats struct {
	started time.Time

	activeConnections atomic.Int64
	totalConnections  atomic.Int64
	delivered         atomic.Int64
	discarded         atomic.Int64
}

func NewStats() *Stats {
	return &Stats{started: time.Now()}
}

// StatsSnapshot is the JSON body of the health endpoint.
type StatsSnapshot struct {
	Emitters          int     `json:"emitters"`
	ActiveConnections int64   `json:"active_connections"`
	TotalConnections  int64   `json:"total_connections"`
	Delivered         int64   `json:"records_delivered"`
	Discarded         int64   `json:"records_discarded"`
	UptimeSeconds     float64 `json:"uptime_s"`
}

func (s *Stats) connOpened() {
	s.activeConnections.Add(1)
	s.totalConnections.Add(1)
}

func (s *Stats) connClosed() {
	s.activeConnections.Add(-1)
}

// deliver routes records through table and counts the outcome.
func (s *Stats) deliver(table *EmitterTable, records []Record) (delivered, discarded int) {
	for _, r := range records {
		if table.Deliver(r) {
			delivered++
		} else {
			discarded++
		}
	}
	s.delivered.Add(int64(delivered))
	s.discarded.Add(int64(discarded))
	return delivered, discarded
}

func (s *Stats) Snapshot(emitters int) StatsSnapshot {
	return StatsSnapshot{
		Emitters:          emitters,
		ActiveConnections: s.activeConnections.Load(),
		TotalConnections:  s.totalConnections.Load(),
		Delivered:         s.delivered.Load(),
		Discarded:         s.discarded.Load(),
		UptimeSeconds:     time.Since(s.started).Seconds(),
	}
}
