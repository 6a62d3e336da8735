package carbon

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	model "github.com/glkeru/carbon/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type confirmPublisher interface {
	PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (*amqp.DeferredConfirmation, error)
}

// RabbitSpends - запросы на списание и подтверждения
type RabbitSpends struct {
	conn         *amqp.Connection
	ch           *amqp.Channel
	Msg          <-chan amqp.Delivery
	chout        confirmPublisher
	confirmQueue string
	logger       *zap.Logger
}

func NewRabbitSpends(logger *zap.Logger, url string, queue string, confirmQueue string, prefetch int) (rabbit *RabbitSpends, err error) {
	if url == "" {
		return nil, fmt.Errorf("env CARBON_RABBIT_URL is not set")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			conn.Close()
		}
	}()

	// канал для входящих
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	err = ch.Qos(prefetch, 0, false)
	if err != nil {
		return nil, err
	}

	// канал для исходящих, с подтверждением публикации
	chout, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	_, err = chout.QueueDeclare(
		confirmQueue, // name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return nil, err
	}
	err = chout.Confirm(false)
	if err != nil {
		return nil, err
	}

	msg, err := ch.Consume(
		queue, // queue
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	return &RabbitSpends{conn, ch, msg, chout, confirmQueue, logger}, nil
}

func (r *RabbitSpends) Close() {
	r.ch.Close()
	r.conn.Close()
}

// подтверждение списания
func (r *RabbitSpends) Processed(ctx context.Context, confirm model.SpendConfirm) error {
	msg, err := json.Marshal(confirm)
	if err != nil {
		return err
	}

	dc, err := r.chout.PublishWithDeferredConfirmWithContext(ctx,
		"",             // exchange
		r.confirmQueue, // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    confirm.SpendID,
			Timestamp:    time.Now(),
			Body:         msg,
		})
	if err != nil {
		return err
	}
	if dc == nil {
		return nil
	}
	ok, err := dc.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("confirm %s was not accepted by broker", confirm.SpendID)
	}
	return nil
}

// Run - workers обработчиков; сообщение подтверждается после отправки результата.
// Отклоненные списания тоже получают ответ, повторов нет.
func (r *RabbitSpends) Run(ctx context.Context, workers int, handle func(ctx context.Context, spend string) (model.SpendConfirm, error)) error {
	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	work := context.WithoutCancel(ctx)

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case msg, ok := <-r.Msg:
					if !ok {
						return nil
					}
					r.process(work, msg, handle)
				}
			}
		})
	}
	return g.Wait()
}

func (r *RabbitSpends) process(ctx context.Context, msg amqp.Delivery, handle func(ctx context.Context, spend string) (model.SpendConfirm, error)) {
	confirm, err := handle(ctx, string(msg.Body))
	if err != nil {
		r.logger.Error("Spend",
			zap.String("service", "RabbitSpends"),
			zap.String("spend", confirm.SpendID),
			zap.Error(err),
		)
	}
	// списание уже проведено, поэтому сообщение не возвращается в очередь даже без ответа
	if confirm.SpendID != "" {
		if err := r.Processed(ctx, confirm); err != nil {
			r.logger.Error("Spend confirm",
				zap.String("service", "RabbitSpends"),
				zap.String("spend", confirm.SpendID),
				zap.Bool("success", confirm.Success),
				zap.Error(err),
			)
		}
	}
	if err := msg.Ack(false); err != nil {
		r.logger.Error("Ack", zap.String("service", "RabbitSpends"), zap.Error(err))
	}
}
