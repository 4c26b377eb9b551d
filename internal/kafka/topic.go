package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/lawchemical/Draft-Order-App/internal/config"
)

const (
	dialTimeout     = 10 * time.Second
	readyTimeout    = 10 * time.Second
	readyPollPeriod = 500 * time.Millisecond
)

// EnsureTopic creates the event topic on the controller if it is missing
// and waits until its partitions show up in metadata. Calling it for an
// existing topic is a no-op.
func EnsureTopic(ctx context.Context, cfg config.Kafka, partitions, replication int, log *zap.Logger) error {
	if len(cfg.Brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return errors.New("empty kafka topic")
	}

	dialer := &kafkago.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Brokers[0])
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	if n := partitionCount(conn, cfg.Topic); n > 0 {
		log.Info("Kafka topic exists", zap.String("topic", cfg.Topic), zap.Int("partitions", n))
		return nil
	}

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("get controller: %w", err)
	}
	addr := net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port))
	ctrlConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial controller %s: %w", addr, err)
	}
	defer ctrlConn.Close()

	log.Info("Creating kafka topic",
		zap.String("topic", cfg.Topic),
		zap.Int("partitions", partitions),
		zap.Int("replication", replication),
	)
	err = ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     partitions,
		ReplicationFactor: replication,
	})
	if err != nil && !errors.Is(err, kafkago.TopicAlreadyExists) {
		return fmt.Errorf("create topic: %w", err)
	}

	ticker := time.NewTicker(readyPollPeriod)
	defer ticker.Stop()
	deadline := time.After(readyTimeout)
	for {
		if n := partitionCount(conn, cfg.Topic); n >= partitions {
			log.Info("Kafka topic is ready", zap.String("topic", cfg.Topic), zap.Int("partitions", n))
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return fmt.Errorf("topic %s not visible after creation", cfg.Topic)
		case <-ticker.C:
		}
	}
}

func partitionCount(conn *kafkago.Conn, topic string) int {
	parts, err := conn.ReadPartitions(topic)
	if err != nil {
		return 0
	}
	return len(parts)
}
