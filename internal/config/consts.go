package config

const (
	SinkKafka    = "kafka"
	SinkPostgres = "postgres"
)
