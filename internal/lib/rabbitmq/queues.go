package rabbitmq

// Exchange is the direct exchange the reminder pipeline publishes to.
const Exchange = "reminders"

// QueueConfig binds a queue name to its routing key on the exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// ReminderQueues returns the queue topology for the reminder workers.
func ReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "reminder.expiring", RoutingKey: "expiring"},
	}
}
