package antivirus

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// chunkSize stays well under clamd's default StreamMaxLength.
const chunkSize = 1 << 20

// ClamAVScanner streams uploads to a clamd daemon with zINSTREAM.
type ClamAVScanner struct {
	address string
	timeout time.Duration
	dialer  net.Dialer
}

var _ Scanner = (*ClamAVScanner)(nil)

// NewClamAVScanner accepts a TCP "host:port" or an absolute unix socket path.
func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{address: address, timeout: timeout}
}

func (c *ClamAVScanner) Name() string { return "clamav" }

func (c *ClamAVScanner) network() string {
	if strings.HasPrefix(c.address, "/") {
		return "unix"
	}
	return "tcp"
}

func (c *ClamAVScanner) dial(ctx context.Context, timeout time.Duration) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	conn, err := c.dialer.DialContext(ctx, c.network(), c.address)
	if err != nil {
		return nil, err
	}
	_ = conn.SetDeadline(time.Now().Add(timeout))
	return conn, nil
}

// Available sends PING and expects PONG.
func (c *ClamAVScanner) Available(ctx context.Context) bool {
	conn, err := c.dial(ctx, 5*time.Second)
	if err != nil {
		return false
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return false
	}
	reply, err := readReply(conn)
	return err == nil && reply == "PONG"
}

func (c *ClamAVScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	result := ScanResult{ScannerName: c.Name()}
	fail := func(err error) ScanResult {
		result.Infected = true
		result.Err = err
		return result
	}

	conn, err := c.dial(ctx, c.timeout)
	if err != nil {
		return fail(fmt.Errorf("connect clamd: %w", err))
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zINSTREAM\x00")); err != nil {
		return fail(fmt.Errorf("send command: %w", err))
	}

	var size [4]byte
	for off := 0; off < len(data); off += chunkSize {
		end := min(off+chunkSize, len(data))
		binary.BigEndian.PutUint32(size[:], uint32(end-off))
		if _, err := conn.Write(size[:]); err != nil {
			return fail(fmt.Errorf("send chunk size: %w", err))
		}
		if _, err := conn.Write(data[off:end]); err != nil {
			return fail(fmt.Errorf("send chunk: %w", err))
		}
	}
	if _, err := conn.Write([]byte{0, 0, 0, 0}); err != nil {
		return fail(fmt.Errorf("send end marker: %w", err))
	}

	reply, err := readReply(conn)
	if err != nil {
		return fail(fmt.Errorf("read reply for %s: %w", filename, err))
	}
	return parseReply(result, reply)
}

// readReply reads one null-terminated clamd response.
func readReply(r io.Reader) (string, error) {
	buf := make([]byte, 0, 128)
	one := make([]byte, 1)
	for len(buf) < 1024 {
		n, err := r.Read(one)
		if n == 1 {
			if one[0] == 0 {
				break
			}
			buf = append(buf, one[0])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimSpace(string(buf)), nil
}

// parseReply understands "stream: OK", "stream: <name> FOUND" and
// "<message> ERROR".
func parseReply(result ScanResult, reply string) ScanResult {
	body := reply
	if _, after, ok := strings.Cut(reply, ":"); ok {
		body = strings.TrimSpace(after)
	}
	switch {
	case body == "OK":
	case strings.HasSuffix(body, " FOUND"):
		result.Infected = true
		result.ThreatName = strings.TrimSuffix(body, " FOUND")
	case strings.HasSuffix(body, "ERROR"):
		result.Infected = true
		result.Err = fmt.Errorf("clamd: %s", reply)
	default:
		result.Infected = true
		result.Err = fmt.Errorf("clamd: unexpected reply %q", reply)
	}
	return result
}
