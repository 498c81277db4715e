package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharedcustody/custody-calendar/internal/core/ports"
)

const (
	defaultWorkers     = 2
	channelBuffer      = 64
	defaultSaveTimeout = 10 * time.Second
)

// Dispatcher delivers save jobs to a fixed set of workers using consistent
// hashing on the username, so saves of one user reach the gateway in the
// order they were enqueued.
type Dispatcher struct {
	workers []chan ports.SaveJob
	gateway ports.DocumentGateway
	timeout time.Duration
	log     zerolog.Logger

	mu       sync.Mutex
	inflight int
	idle     chan struct{} // closed whenever inflight is zero
	onResult func(job ports.SaveJob, err error)
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, gateway ports.DocumentGateway, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.SaveJob, numWorkers),
		gateway: gateway,
		timeout: defaultSaveTimeout,
		log:     log,
		idle:    make(chan struct{}),
	}
	close(d.idle)
	for i := range d.workers {
		d.workers[i] = make(chan ports.SaveJob, channelBuffer)
	}
	return d
}

// OnResult registers a callback invoked after every save attempt.
// It must be set before Start.
func (d *Dispatcher) OnResult(fn func(job ports.SaveJob, err error)) {
	d.onResult = fn
}

// SetTimeout bounds each gateway call.
func (d *Dispatcher) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		d.timeout = timeout
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its username.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.SaveJob) {
	d.mu.Lock()
	if d.inflight == 0 {
		d.idle = make(chan struct{})
	}
	d.inflight++
	d.mu.Unlock()

	d.workers[d.shardIndex(job.Username)] <- job
}

// Wait blocks until no enqueued job is left unattempted or ctx ends.
// Enqueue may run concurrently with Wait.
func (d *Dispatcher) Wait(ctx context.Context) error {
	d.mu.Lock()
	idle := d.idle
	d.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) done() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inflight--
	if d.inflight == 0 {
		close(d.idle)
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.SaveJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			d.save(ctx, id, job)
		}
	}
}

func (d *Dispatcher) save(ctx context.Context, id int, job ports.SaveJob) {
	defer d.done()

	saveCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := d.gateway.Save(saveCtx, job.Username, job.Document)
	if err != nil {
		d.log.Error().Err(err).
			Str("username", job.Username).
			Int("worker_id", id).
			Msg("document save failed")
	} else {
		d.log.Debug().
			Str("username", job.Username).
			Int("entries", len(job.Document)).
			Int("worker_id", id).
			Msg("document saved")
	}

	if d.onResult != nil {
		d.onResult(job, err)
	}
}
