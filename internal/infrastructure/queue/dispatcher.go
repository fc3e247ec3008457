package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cinema-app/shop-api/internal/api/metrics"
	"github.com/cinema-app/shop-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// SendGuard abstracts the at-most-once delivery check (Redis).
type SendGuard interface {
	AlreadySent(ctx context.Context, token string) (bool, error)
	Mark(ctx context.Context, token string) error
}

// Dispatcher delivers activation emails on a fixed set of workers, sharded by
// recipient address so emails to one address keep their order. Registration
// only pays for a channel send; SMTP happens here.
type Dispatcher struct {
	workers []chan ports.ActivationEmail
	mailer  ports.Mailer
	guard   SendGuard
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, guard SendGuard, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ActivationEmail, numWorkers),
		mailer:  mailer,
		guard:   guard,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivationEmail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an email to the worker responsible for its recipient.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(email ports.ActivationEmail) {
	i := d.shardIndex(email.To)
	d.workers[i] <- email
	metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a recipient address deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivationEmail) {
	depth := metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case email, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			d.deliver(ctx, email)
		}
	}
}

// deliver sends one email, honouring the at-most-once-per-token guard. Guard
// failures are logged and delivery proceeds: a possible duplicate beats a
// silently lost activation link.
func (d *Dispatcher) deliver(ctx context.Context, email ports.ActivationEmail) {
	sent, err := d.guard.AlreadySent(ctx, email.Token)
	if err != nil {
		d.log.Warn().Err(err).Str("recipient", email.To).Msg("mail guard check failed, sending anyway")
	} else if sent {
		d.log.Debug().Str("recipient", email.To).Msg("activation email already delivered, skipping")
		metrics.EmailsTotal.WithLabelValues("skipped").Inc()
		return
	}

	if err := d.mailer.SendActivation(ctx, email); err != nil {
		d.log.Error().Err(err).Str("recipient", email.To).Msg("activation email delivery failed")
		metrics.EmailsTotal.WithLabelValues("error").Inc()
		return
	}

	if err := d.guard.Mark(ctx, email.Token); err != nil {
		d.log.Warn().Err(err).Str("recipient", email.To).Msg("failed to mark activation email as sent")
	}

	metrics.EmailsTotal.WithLabelValues("sent").Inc()
	d.log.Info().Str("recipient", email.To).Str("username", email.Username).Msg("activation email sent")
}
