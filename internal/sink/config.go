package sink

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type PostgresConfig struct {
	Table string
}
