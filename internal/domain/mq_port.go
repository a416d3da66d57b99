package domain

type Message struct {
	Key   []byte
	Value []byte
}

type PublisherPort interface {
	Publish(topic string, msgs ...Message) error
}

type SubscriberPort interface {
	Subscribe(topic, groupID string) (<-chan Message, error)
}

// MailerPort sends outbound receipts. Failures are logged by callers and never
// roll back a committed financial mutation.
type MailerPort interface {
	Send(to, subject, body string) error
}
