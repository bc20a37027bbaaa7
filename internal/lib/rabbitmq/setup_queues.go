package rabbitmq

// QueueConfig очередь и ключ маршрутизации, с которым она привязана к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// EventQueues очереди для потребителей событий опросов.
func EventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "surveys.created", RoutingKey: RoutingSurveyCreated},
		{QueueName: "surveys.responses", RoutingKey: RoutingResponseSubmitted},
	}
}
