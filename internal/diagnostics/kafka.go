package diagnostics

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"atelier/internal/boundary"
)

// DefaultDeliveryTimeout bounds how long one fault event may wait for the broker.
const DefaultDeliveryTimeout = 10 * time.Second

// Producer is the slice of *kgo.Client the Kafka collector needs. TryProduce never
// blocks: a full buffer fails the record with kgo.ErrMaxBuffered instead.
type Producer interface {
	TryProduce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
}

var _ Producer = (*kgo.Client)(nil)

// Event is the JSON payload published per fault.
type Event struct {
	ID             string    `json:"id"`
	OccurredAt     time.Time `json:"occurred_at"`
	Kind           string    `json:"kind"`
	Message        string    `json:"message"`
	Trace          string    `json:"trace,omitempty"`
	ComponentStack []string  `json:"component_stack"`
	Boundary       string    `json:"boundary"`
	Site           string    `json:"site,omitempty"`
	Path           string    `json:"path,omitempty"`
	Browser        string    `json:"browser,omitempty"`
	RequestID      string    `json:"request_id,omitempty"`
}

// Kafka publishes faults to a topic asynchronously. Delivery failures are logged.
type Kafka struct {
	producer Producer
	topic    string
	logger   *slog.Logger
	now      func() time.Time
	timeout  time.Duration
}

func NewKafka(producer Producer, topic string, logger *slog.Logger) *Kafka {
	return &Kafka{producer: producer, topic: topic, logger: logger, now: time.Now, timeout: DefaultDeliveryTimeout}
}

func (k *Kafka) Report(ctx context.Context, rec boundary.ErrorRecord, rc boundary.ReportContext) {
	payload, err := json.Marshal(Event{
		ID:             uuid.NewString(),
		OccurredAt:     k.now().UTC(),
		Kind:           rec.Kind,
		Message:        rec.Message,
		Trace:          rec.Trace,
		ComponentStack: rec.ComponentStack,
		Boundary:       rc.Boundary,
		Site:           rc.Site,
		Path:           rc.Path,
		Browser:        rc.Browser,
		RequestID:      rc.RequestID,
	})
	if err != nil {
		k.logger.WarnContext(ctx, "encode diagnostic event", "error", err)
		return
	}

	record := &kgo.Record{Topic: k.topic, Key: []byte(rc.Site), Value: payload}
	// Detached from the request, which may finish before the broker acknowledges,
	// but bounded so a stalled broker cannot pin buffered records forever.
	produceCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), k.timeout)
	k.producer.TryProduce(produceCtx, record, func(_ *kgo.Record, err error) {
		cancel()
		if err != nil {
			k.logger.Warn("publish diagnostic event", "topic", k.topic, "error", err)
		}
	})
}
