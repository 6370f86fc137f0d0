package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
)

// DispatchError reports a failed SMTP delivery to one recipient.
type DispatchError struct {
	Recipient string
	Err       error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch to %s: %v", e.Recipient, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// Credentials is the sender address and secret used to authenticate against
// the mail relay. The secret must never appear in logs.
type Credentials struct {
	Sender string
	Secret string
}

// Dispatcher delivers composed notifications.
type Dispatcher interface {
	Send(n *Notification, creds Credentials) error
}

// SMTPDispatcher delivers notifications over an implicit-TLS SMTP session.
type SMTPDispatcher struct {
	Host string
	Port int
}

// NewSMTPDispatcher creates a dispatcher for the given relay endpoint.
func NewSMTPDispatcher(host string, port int) *SMTPDispatcher {
	return &SMTPDispatcher{Host: host, Port: port}
}

// Send opens a TLS session to the relay, authenticates, and transmits the
// message. The session is torn down on every exit path.
func (d *SMTPDispatcher) Send(n *Notification, creds Credentials) error {
	msg, err := n.Bytes()
	if err != nil {
		return &DispatchError{Recipient: n.To, Err: err}
	}

	addr := fmt.Sprintf("%s:%d", d.Host, d.Port)
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: d.Host})
	if err != nil {
		return &DispatchError{Recipient: n.To, Err: fmt.Errorf("dial %s: %w", addr, err)}
	}

	client, err := smtp.NewClient(conn, d.Host)
	if err != nil {
		conn.Close()
		return &DispatchError{Recipient: n.To, Err: fmt.Errorf("smtp handshake: %w", err)}
	}
	defer client.Close()

	auth := smtp.PlainAuth("", creds.Sender, creds.Secret, d.Host)
	if err := client.Auth(auth); err != nil {
		return &DispatchError{Recipient: n.To, Err: fmt.Errorf("auth as %s: %w", creds.Sender, err)}
	}
	if err := client.Mail(creds.Sender); err != nil {
		return &DispatchError{Recipient: n.To, Err: fmt.Errorf("mail from: %w", err)}
	}
	if err := client.Rcpt(n.To); err != nil {
		return &DispatchError{Recipient: n.To, Err: fmt.Errorf("rcpt to: %w", err)}
	}
	wc, err := client.Data()
	if err != nil {
		return &DispatchError{Recipient: n.To, Err: fmt.Errorf("data: %w", err)}
	}
	if _, err := wc.Write(msg); err != nil {
		wc.Close()
		return &DispatchError{Recipient: n.To, Err: fmt.Errorf("write message: %w", err)}
	}
	if err := wc.Close(); err != nil {
		return &DispatchError{Recipient: n.To, Err: fmt.Errorf("finish message: %w", err)}
	}
	if err := client.Quit(); err != nil {
		return &DispatchError{Recipient: n.To, Err: fmt.Errorf("quit: %w", err)}
	}
	return nil
}
