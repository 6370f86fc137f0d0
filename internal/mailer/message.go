package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Part is one MIME body part of a notification. Parts with a ContentID are
// embedded as inline resources, not attachments.
type Part struct {
	ContentType string
	ContentID   string
	Body        []byte
}

// Notification is a composed multipart message for a single recipient.
// It is built fresh per subscriber and never reused.
type Notification struct {
	Subject string
	From    string
	To      string
	Parts   []Part
}

// Bytes renders the notification as a complete RFC 5322 message with a
// multipart/related body, parts in their composed order.
func (n *Notification) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", n.From)
	fmt.Fprintf(&buf, "To: %s\r\n", n.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", n.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/related; boundary=%q\r\n\r\n", w.Boundary())

	for _, p := range n.Parts {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", p.ContentType)
		body := p.Body
		if p.ContentID != "" {
			// Set directly: textproto canonicalizes "Content-ID" to "Content-Id".
			h["Content-ID"] = []string{"<" + p.ContentID + ">"}
			h.Set("Content-Disposition", "inline")
			h.Set("Content-Transfer-Encoding", "base64")
			body = []byte(wrapBase64(p.Body))
		}
		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("create part: %w", err)
		}
		if _, err := pw.Write(body); err != nil {
			return nil, fmt.Errorf("write part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close message body: %w", err)
	}
	return buf.Bytes(), nil
}

// wrapBase64 encodes b with line breaks at the RFC 2045 limit.
func wrapBase64(b []byte) string {
	enc := base64.StdEncoding.EncodeToString(b)
	var sb strings.Builder
	for len(enc) > 76 {
		sb.WriteString(enc[:76])
		sb.WriteString("\r\n")
		enc = enc[76:]
	}
	sb.WriteString(enc)
	return sb.String()
}
