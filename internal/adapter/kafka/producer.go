package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/zambashope/moz-checkout/internal/core/domain"
	"github.com/zambashope/moz-checkout/internal/core/port"
)

var _ port.CheckoutEventsProducer = (*CheckoutsProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A CheckoutsProducer publishes saved checkout configurations keyed by
// checkout id.
type CheckoutsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
	now      func() time.Time
}

func NewCheckoutsProducer(
	opts ...ProducerOpt,
) (CheckoutsProducer, error) {
	const op = "NewCheckoutsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CheckoutsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "CheckoutsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return CheckoutsProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
		now:      time.Now,
	}, nil
}

func (p CheckoutsProducer) Close() {
	p.producer.close()
}

func (p CheckoutsProducer) ProduceCheckoutSaved(
	ctx context.Context, v domain.CheckoutConfiguration,
) error {
	const op = "ProduceCheckoutSaved"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(v)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p CheckoutsProducer) createRecord(
	v domain.CheckoutConfiguration,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := checkoutToSchemaV1(v, p.now())
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	return &kgo.Record{Key: []byte(s.CheckoutID), Value: b}, nil
}
