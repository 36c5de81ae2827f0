// Package kafka consumes video jobs from a Kafka topic and feeds them into
// the processing pipeline.
package kafka

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/IBM/sarama"

	"clipsmith/processor"
	"clipsmith/types"
)

// MessageHandler processes one consumed message. If shouldMark is false or an
// error is returned, the message is not marked and will be retried.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message []byte) (shouldMark bool, err error)
}

// ConsumerConfig holds Kafka consumer configuration.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler MessageHandler
}

// Consumer wraps a sarama consumer group with pluggable message handling.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler MessageHandler
	topic   string
	groupID string
	ready   chan bool
}

// NewConsumer creates a Kafka consumer group client.
func NewConsumer(config ConsumerConfig) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		handler: config.Handler,
		topic:   config.Topic,
		groupID: config.GroupID,
		ready:   make(chan bool),
	}, nil
}

// Start begins consuming messages. It returns once the group session is
// established; consumption continues in the background until ctx is canceled.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &groupHandler{handler: c.handler, ready: c.ready}

	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				if err == context.Canceled {
					log.Println("Kafka consumer context canceled")
					return
				}
				log.Printf("Error from Kafka consumer: %v", err)
			}

			if ctx.Err() != nil {
				return
			}
			handler.ready = make(chan bool)
		}
	}()

	<-c.ready
	log.Printf("✅ Kafka consumer started (group: %s, topic: %s)", c.groupID, c.topic)

	go func() {
		for err := range c.group.Errors() {
			log.Printf("❌ Kafka consumer error: %v", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the consumer.
func (c *Consumer) Close() error {
	log.Println("Closing Kafka consumer...")
	return c.group.Close()
}

// groupHandler implements sarama.ConsumerGroupHandler.
type groupHandler struct {
	handler MessageHandler
	ready   chan bool
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			log.Printf("📥 Received Kafka message: partition=%d, offset=%d, key=%s",
				message.Partition, message.Offset, string(message.Key))

			shouldMark, err := h.handler.HandleMessage(session.Context(), message.Value)
			if err != nil {
				log.Printf("❌ Failed to handle message: %v", err)
			}
			if shouldMark {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

// TypedMessageHandler decodes messages into T before validation and
// processing. Undecodable and invalid messages are marked (skipped) when
// AlwaysMark is set; processing failures are never marked so they retry.
type TypedMessageHandler[T any] struct {
	Validate   func(msg *T) bool
	Process    func(ctx context.Context, msg *T) error
	AlwaysMark bool
}

// HandleMessage implements MessageHandler.
func (h *TypedMessageHandler[T]) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("❌ Failed to unmarshal message: %v", err)
		return h.AlwaysMark, nil
	}

	if h.Validate != nil && !h.Validate(&msg) {
		return h.AlwaysMark, nil
	}

	if err := h.Process(ctx, &msg); err != nil {
		return false, err
	}
	return true, nil
}

// NewJobConsumer builds a consumer that hands video jobs to proc.
func NewJobConsumer(config ConsumerConfig, proc *processor.VideoProcessor) (*Consumer, error) {
	config.Handler = &TypedMessageHandler[types.VideoJob]{
		Validate: func(job *types.VideoJob) bool {
			if job.Status != "" && job.Status != "success" {
				log.Printf("⚠️  Skipping job with status: %s", job.Status)
				return false
			}
			if len(job.Segments) == 0 {
				log.Printf("❌ Job %s has no segments, skipping", job.UUID)
				return false
			}
			return true
		},
		Process: func(ctx context.Context, job *types.VideoJob) error {
			log.Printf("🎬 Processing job: UUID=%s", job.UUID)
			if err := proc.ProcessJob(ctx, *job); err != nil {
				log.Printf("❌ Failed to process job %s: %v", job.UUID, err)
				return err
			}
			log.Printf("✅ Successfully processed job: UUID=%s", job.UUID)
			return nil
		},
		AlwaysMark: true, // mark validation failures, not processing failures
	}
	return NewConsumer(config)
}

// RunWithGracefulShutdown starts the consumer and blocks until SIGINT/SIGTERM.
func RunWithGracefulShutdown(consumer *Consumer) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		return err
	}

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigterm:
		log.Println("Received termination signal")
	case <-ctx.Done():
		log.Println("Context canceled")
	}

	cancel()

	// Give in-flight jobs a moment to finish.
	time.Sleep(2 * time.Second)

	return consumer.Close()
}

// Brokers parses the broker list from KAFKA_BOOTSTRAP_SERVERS.
func Brokers() []string {
	brokers := os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
	if brokers == "" {
		brokers = "localhost:9093"
	}
	return strings.Split(brokers, ",")
}

// Topic returns the job topic name from KAFKA_TOPIC_COMPOSITION_JOBS.
func Topic() string {
	topic := os.Getenv("KAFKA_TOPIC_COMPOSITION_JOBS")
	if topic == "" {
		topic = "composition-jobs"
	}
	return topic
}

// GroupID returns the consumer group ID from KAFKA_CONSUMER_GROUP_ID.
func GroupID() string {
	groupID := os.Getenv("KAFKA_CONSUMER_GROUP_ID")
	if groupID == "" {
		groupID = "clipsmith-planner-group"
	}
	return groupID
}
