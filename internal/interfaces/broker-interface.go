package interfaces

type ConsumerHandler interface {
	HandleMessage(key string, message []byte) error
}

type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}
