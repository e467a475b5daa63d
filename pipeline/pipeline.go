// Package pipeline wires capture, session tracking, UNET demultiplexing
// and application dispatch into the producer/consumer loop described in
// spec.md §5: a capture goroutine enqueues records, a processing goroutine
// drains them from a buffered channel and runs the full decode chain, and
// any number of consumer goroutines read the resulting world snapshot
// under its own lock. Grounded on main.cpp's work/WorkGroup/net-thread
// structure and the teacher's background-goroutine texture in
// decoder/packet/connection.go.
package pipeline

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ucectoplasm/eft-packet/capture"
	"github.com/ucectoplasm/eft-packet/dispatch"
	"github.com/ucectoplasm/eft-packet/lootdb"
	"github.com/ucectoplasm/eft-packet/metrics"
	"github.com/ucectoplasm/eft-packet/session"
	"github.com/ucectoplasm/eft-packet/unet"
)

// Pipeline owns the capture source, the session tracker, and the queue
// between the capture and processing stages.
type Pipeline struct {
	source  capture.Source
	tracker *session.Tracker
	lootDB  *lootdb.Database
	metrics *metrics.Registry
	log     *zap.Logger

	queue chan capture.DatagramRecord
}

// New builds a pipeline reading from source. queueDepth bounds how many
// records may be buffered between the capture and processing stages
// before the capture side blocks.
func New(source capture.Source, tracker *session.Tracker, db *lootdb.Database, reg *metrics.Registry, log *zap.Logger, queueDepth int) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}

	if queueDepth <= 0 {
		queueDepth = 256
	}

	return &Pipeline{
		source:  source,
		tracker: tracker,
		lootDB:  db,
		metrics: reg,
		log:     log,
		queue:   make(chan capture.DatagramRecord, queueDepth),
	}
}

// Run starts the capture and processing goroutines and blocks until ctx
// is cancelled or the capture source is exhausted (end of a replay dump).
func (p *Pipeline) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	wg.Add(2)

	var captureErr error

	go func() {
		defer wg.Done()
		defer close(p.queue)

		captureErr = p.captureLoop(ctx)
	}()

	go func() {
		defer wg.Done()

		p.processLoop(ctx)
	}()

	wg.Wait()

	return captureErr
}

func (p *Pipeline) captureLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		rec, err := p.source.Next()
		if err != nil {
			return err
		}

		p.metrics.PacketsCaptured.Inc()

		select {
		case p.queue <- rec:
		case <-ctx.Done():
			return nil
		}
	}
}

func (p *Pipeline) processLoop(ctx context.Context) {
	for {
		select {
		case rec, ok := <-p.queue:
			if !ok {
				return
			}

			p.processOne(rec)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pipeline) processOne(rec capture.DatagramRecord) {
	replay := rec.Src == "" && rec.Dst == ""

	sess, ok := p.tracker.Accept(rec.Payload, rec.Src, rec.Dst, replay)
	if !ok {
		return
	}

	direction := sess.Inbound
	dispatchDir := dispatch.Inbound

	if rec.Outbound {
		direction = sess.Outbound
		dispatchDir = dispatch.Outbound
	}

	// Accept only admits payloads longer than 3 bytes, so the 2-byte
	// connection id can be stripped before the UNET header is parsed.
	messages, err := unet.Demux(rec.Payload[2:], direction, sess.Fragments)
	if err != nil {
		p.metrics.ParseErrors.WithLabelValues("demux").Inc()
		p.log.Debug("demux error", zap.Error(err))

		return
	}

	for _, msg := range messages {
		p.metrics.MessagesDemuxed.WithLabelValues(channelKindLabel(msg.Channel)).Inc()

		ctx := dispatch.Context{
			Session: sess,
			LootDB:  p.lootDB,
			Log:     p.log,
			Channel: msg.Channel,
		}

		if err := dispatch.Dispatch(ctx, dispatchDir, msg.Payload); err != nil {
			p.metrics.ParseErrors.WithLabelValues("dispatch").Inc()
			p.log.Debug("dispatch error", zap.Error(err))
		}
	}
}

func channelKindLabel(channel int) string {
	switch {
	case channel <= 2:
		return "fragmented"
	case channel%2 == 1:
		return "reliable"
	default:
		return "unreliable"
	}
}
