package carbon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEarnings - события эко-активности
type KafkaEarnings struct {
	reader messageReader
	logger *zap.Logger
}

func NewKafkaEarnings(logger *zap.Logger, brokers []string, topic string, group string) (*KafkaEarnings, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("env CARBON_KAFKA_BROKERS is not set")
	}
	if topic == "" {
		return nil, fmt.Errorf("env CARBON_KAFKA_TOPIC is not set")
	}

	kafkaconfig := kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        group,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        time.Second,
		CommitInterval: 0, // коммит синхронно, после обработки
	}
	return &KafkaEarnings{kafka.NewReader(kafkaconfig), logger}, nil
}

func (k *KafkaEarnings) Close() error {
	return k.reader.Close()
}

// partitionOffsets - сообщения партиции в порядке чтения, еще не закоммиченные
type partitionOffsets struct {
	mu      sync.Mutex
	pending []kafka.Message
	done    map[int64]bool
}

func (p *partitionOffsets) add(msg kafka.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, msg)
}

// Run - читать события и обрабатывать не более workers одновременно.
// Смещение коммитится после обработки, в том числе неуспешной: повторов нет.
// Внутри партиции коммит идет по порядку: только до первого необработанного сообщения.
func (k *KafkaEarnings) Run(ctx context.Context, workers int, handle func(ctx context.Context, event string) error) error {
	if workers < 1 {
		workers = 1
	}
	g := &errgroup.Group{}
	g.SetLimit(workers)
	// начатые сообщения дорабатываем и после остановки
	work := context.WithoutCancel(ctx)
	partitions := map[int]*partitionOffsets{}

	var err error
	for {
		var msg kafka.Message
		msg, err = k.reader.FetchMessage(ctx)
		if err != nil {
			break
		}
		offsets, ok := partitions[msg.Partition]
		if !ok {
			offsets = &partitionOffsets{done: map[int64]bool{}}
			partitions[msg.Partition] = offsets
		}
		offsets.add(msg)

		g.Go(func() error {
			if err := handle(work, string(msg.Value)); err != nil {
				k.logger.Error("Earning event",
					zap.String("service", "KafkaEarnings"),
					zap.Int("partition", msg.Partition),
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
			}
			k.commit(work, offsets, msg)
			return nil
		})
	}
	_ = g.Wait()

	// остановка по сигналу - не ошибка
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// commit - отметить сообщение обработанным и закоммитить непрерывный обработанный префикс.
// Коммиты партиции идут под ее блокировкой.
func (k *KafkaEarnings) commit(ctx context.Context, p *partitionOffsets, msg kafka.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done[msg.Offset] = true
	var last kafka.Message
	ready := false
	for len(p.pending) > 0 && p.done[p.pending[0].Offset] {
		last = p.pending[0]
		delete(p.done, last.Offset)
		p.pending = p.pending[1:]
		ready = true
	}
	if !ready {
		return
	}
	if err := k.reader.CommitMessages(ctx, last); err != nil {
		k.logger.Error("Commit",
			zap.String("service", "KafkaEarnings"),
			zap.Int("partition", last.Partition),
			zap.Int64("offset", last.Offset),
			zap.Error(err),
		)
	}
}
