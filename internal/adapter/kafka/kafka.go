package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/zambashope/moz-checkout/internal/core/domain"
	"github.com/zambashope/moz-checkout/pkg/schema"
)

var (
	ErrTooFewOpts = errors.New("too few options")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

// ProducerClientOpt dials the brokers and pings them. tlsCfg may be nil.
func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string, tlsCfg *tls.Config,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kopts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
		}
		if tlsCfg != nil {
			kopts = append(kopts, kgo.DialTLSConfig(tlsCfg))
		}

		cl, err := kgo.NewClient(kopts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerClientInstanceOpt uses an already built client.
func ProducerClientInstanceOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("producer client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func checkoutToSchemaV1(
	v domain.CheckoutConfiguration, savedAt time.Time,
) (s schema.CheckoutV1) {
	s.CheckoutID = v.CheckoutID
	s.OwnerID = v.OwnerID
	s.SelectedProductID = v.SelectedProductID
	s.Title = v.Title
	s.Description = v.Description
	s.CustomMessage = v.CustomMessage
	s.CollectPhone = v.CollectPhone
	s.CollectEmail = v.CollectEmail
	s.Upsells = offersToSchemaV1(v.Upsells)
	s.Downsells = offersToSchemaV1(v.Downsells)
	s.Theme.PrimaryColor = v.Theme.PrimaryColor
	s.Theme.ButtonColor = v.Theme.ButtonColor
	s.Theme.BackgroundColor = v.Theme.BackgroundColor
	s.Theme.TextColor = v.Theme.TextColor
	s.Theme.FontFamily = v.Theme.FontFamily
	if v.Theme.BorderRadiusPx != nil {
		px := *v.Theme.BorderRadiusPx
		s.Theme.BorderRadiusPx = &px
	}
	s.SavedAt = savedAt.UTC()
	return
}

func offersToSchemaV1(ps []domain.Product) []schema.OfferV1 {
	s := make([]schema.OfferV1, len(ps))
	for i, p := range ps {
		s[i].ProductID = p.ProductID
		s[i].Title = p.Title
		s[i].Price = p.Price.StringFixed(2)
	}
	return s
}
