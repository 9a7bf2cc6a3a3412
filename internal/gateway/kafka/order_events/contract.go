//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_events_test
package order_events

import (
	"github.com/IBM/sarama"
)

type producer interface {
	SendMessage(msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
}
