package services

import (
	"log/slog"
	"sync"

	"github.com/kicho-app/kicho_backend/internal/core/domain"
	portssvc "github.com/kicho-app/kicho_backend/internal/core/ports/services"
)

// channelNotifier fans journal events out to a single consumer goroutine.
// Notify never blocks: when the buffer is full the event is dropped and
// counted. Delivery is best-effort by contract; the posting transaction has
// already committed by the time Notify runs.
type channelNotifier struct {
	events    chan domain.JournalEvent
	logger    *slog.Logger
	closeOnce sync.Once
	done      chan struct{}

	mu      sync.Mutex
	closed  bool
	dropped int64
}

// NewChangeNotifier creates a notifier with the given buffer size and starts
// its consumer goroutine.
func NewChangeNotifier(logger *slog.Logger, bufferSize int) portssvc.ChangeNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	if bufferSize < 1 {
		bufferSize = 64
	}
	n := &channelNotifier{
		events: make(chan domain.JournalEvent, bufferSize),
		logger: logger,
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

// Ensure channelNotifier implements the portssvc.ChangeNotifier interface
var _ portssvc.ChangeNotifier = (*channelNotifier)(nil)

func (n *channelNotifier) run() {
	defer close(n.done)
	for event := range n.events {
		n.logger.Info("Journal changed",
			slog.String("event_id", event.EventID),
			slog.String("operation", string(event.Operation)),
			slog.String("journal_number", event.JournalNumber),
			slog.Time("occurred_at", event.OccurredAt),
		)
	}
}

// Notify queues an event for delivery. It never blocks the caller, and a call
// after Close counts as a drop instead of a send on a closed channel. The send
// happens under the mutex so Close cannot close the channel mid-send.
func (n *channelNotifier) Notify(event domain.JournalEvent) {
	n.mu.Lock()
	if !n.closed {
		select {
		case n.events <- event:
			n.mu.Unlock()
			return
		default:
		}
	}
	n.dropped++
	dropped := n.dropped
	n.mu.Unlock()
	n.logger.Warn("Change notification dropped",
		slog.String("journal_number", event.JournalNumber),
		slog.Int64("total_dropped", dropped),
	)
}

// Close stops accepting events, drains the buffer, and waits for the consumer
// goroutine to finish.
func (n *channelNotifier) Close() {
	n.closeOnce.Do(func() {
		n.mu.Lock()
		n.closed = true
		n.mu.Unlock()
		close(n.events)
		<-n.done
	})
}
