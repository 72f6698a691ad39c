package connection

import (
	"context"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConnectKafkaWithRetry verifies the broker is reachable before handing
// back a writer; kafka-go writers otherwise fail lazily on first publish.
func ConnectKafkaWithRetry(broker string, maxRetries int) (*kafkago.Writer, error) {
	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		conn, err := kafkago.DialContext(ctx, "tcp", broker)
		cancel()
		if err == nil {
			conn.Close()
			zap.L().Info("kafka connection established", zap.String("broker", broker))
			return &kafkago.Writer{
				Addr:         kafkago.TCP(broker),
				Balancer:     &kafkago.LeastBytes{},
				RequiredAcks: kafkago.RequireAll,
			}, nil
		}

		zap.L().Warn("kafka dial failed", zap.Int("attempt", i), zap.Error(err))
		time.Sleep(5 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect kafka broker at %s", broker)
}

func NewKafkaReader(broker, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
