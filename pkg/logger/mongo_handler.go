package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoQueueSize = 4096
	mongoBatchSize = 50
	mongoDrainTick = 2 * time.Second
)

// LogDocument is the shape written to MongoDB.
type LogDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// batchWriter is the part of *mongo.Collection the sink needs.
type batchWriter interface {
	InsertMany(ctx context.Context, docs []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// sink is shared by a MongoHandler and every handler derived from it.
type sink struct {
	col     batchWriter
	queue   chan LogDocument
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	dropped uint64
	mu      sync.Mutex
	onClose func(context.Context) error
}

// MongoHandler is an slog.Handler that batches records into a MongoDB
// collection from a background goroutine. Handle never blocks: when the
// queue is full the record is dropped.
type MongoHandler struct {
	s      *sink
	level  slog.Level
	attrs  []slog.Attr
	prefix string
}

// NewMongoHandler connects to uri and logs into db.collection at level and
// above. The caller must eventually call Close.
func NewMongoHandler(uri, db, collection string, level slog.Level) (*MongoHandler, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo log sink: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo log sink: ping: %w", err)
	}

	col := client.Database(db).Collection(collection)
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})

	h := newMongoHandler(col, level)
	h.s.onClose = client.Disconnect
	return h, nil
}

func newMongoHandler(col batchWriter, level slog.Level) *MongoHandler {
	s := &sink{
		col:     col,
		queue:   make(chan LogDocument, mongoQueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.drainLoop()
	return &MongoHandler{s: s, level: level}
}

func (h *MongoHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }

func (h *MongoHandler) Handle(_ context.Context, r slog.Record) error {
	doc := LogDocument{
		Time:  r.Time,
		Level: r.Level.String(),
		Msg:   r.Message,
		Attrs: bson.M{},
	}
	add := func(a slog.Attr, prefix string) {
		if a.Key == "request_id" && prefix == "" {
			doc.RequestID = a.Value.String()
			return
		}
		doc.Attrs[prefix+a.Key] = a.Value.Resolve().Any()
	}
	for _, a := range h.attrs {
		add(a, "")
	}
	r.Attrs(func(a slog.Attr) bool {
		add(a, h.prefix)
		return true
	})
	if len(doc.Attrs) == 0 {
		doc.Attrs = nil
	}

	select {
	case h.s.queue <- doc:
	default:
		h.s.mu.Lock()
		h.s.dropped++
		h.s.mu.Unlock()
	}
	return nil
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *MongoHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// Dropped is the number of records lost to a full queue.
func (h *MongoHandler) Dropped() uint64 {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.s.dropped
}

func (s *sink) drainLoop() {
	defer close(s.stopped)
	ticker := time.NewTicker(mongoDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, mongoBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = s.col.InsertMany(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-s.queue:
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			for {
				select {
				case doc := <-s.queue:
					batch = append(batch, doc)
					if len(batch) >= mongoBatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// Close flushes pending records and disconnects. Safe to call more than once.
func (h *MongoHandler) Close(ctx context.Context) error {
	var err error
	h.s.once.Do(func() {
		close(h.s.done)
		select {
		case <-h.s.stopped:
		case <-ctx.Done():
			err = ctx.Err()
		}
		if h.s.onClose != nil {
			if cerr := h.s.onClose(ctx); cerr != nil && err == nil {
				err = cerr
			}
		}
	})
	return err
}

// ─── Multi-handler fan-out ─────────────────────────────────────────────────────

// MultiHandler fans out to multiple slog.Handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler returns a handler that sends each record to all hs.
func NewMultiHandler(hs ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []string
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("logger: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: hs}
}
