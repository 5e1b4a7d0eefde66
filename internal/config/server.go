package config

type ServerConfig struct {
	GRPCAddr string `env:"GRPC_ADDR" envDefault:":50051"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// BrokerConfig — RabbitMQ для доменных событий. Пустой URL отключает публикацию.
type BrokerConfig struct {
	URL   string `env:"RABBITMQ_URL"`
	Queue string `env:"RABBITMQ_QUEUE" envDefault:"studio.sessions.events"`
}

func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	err := ParseEnv(&cfg)
	return cfg, err
}

func LoadBrokerConfig() (BrokerConfig, error) {
	var cfg BrokerConfig
	err := ParseEnv(&cfg)
	return cfg, err
}
