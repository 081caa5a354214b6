// Package smtp provides the STARTTLS transport used to send mail through
// the provider relay.
package smtp

import "io"

// Client is the subset of *smtp.Client the mailer needs.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface abstracts the relay connection for tests.
type TransportInterface interface {
	Connect() (Client, error)
	From() (address, name string)
}
