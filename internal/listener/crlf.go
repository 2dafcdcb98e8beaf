package listener

import (
	"bytes"
	"io"
)

// lineEndings turns any of \r\n, \r or \n from the client into \n and sends
// \r\n back. Telnet clients send \r\n, ssh clients with a pty send \r.
type lineEndings struct {
	rw     io.ReadWriter
	lastCR bool
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &lineEndings{rw: rw}
}

func (c *lineEndings) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n == 0 {
		return 0, err
	}

	out := p[:0]
	for _, b := range p[:n] {
		switch {
		case b == '\n' && c.lastCR:
			// Second half of a \r\n already emitted as \n.
			c.lastCR = false
		case b == '\r':
			out = append(out, '\n')
			c.lastCR = true
		default:
			out = append(out, b)
			c.lastCR = false
		}
	}
	return len(out), err
}

func (c *lineEndings) Write(p []byte) (int, error) {
	_, err := c.rw.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n")))
	return len(p), err
}
