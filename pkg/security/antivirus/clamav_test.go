package antivirus_test

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"hireable-backend/pkg/security/antivirus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClamd answers one connection per call to reply.
func fakeClamd(t *testing.T, reply func(cmd string, body []byte) string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				r := bufio.NewReader(conn)
				cmd, err := r.ReadString(0)
				if err != nil {
					return
				}
				cmd = cmd[:len(cmd)-1]
				var body []byte
				if cmd == "zINSTREAM" {
					for {
						var size [4]byte
						if _, err := io.ReadFull(r, size[:]); err != nil {
							return
						}
						n := binary.BigEndian.Uint32(size[:])
						if n == 0 {
							break
						}
						chunk := make([]byte, n)
						if _, err := io.ReadFull(r, chunk); err != nil {
							return
						}
						body = append(body, chunk...)
					}
				}
				_, _ = conn.Write([]byte(reply(cmd, body) + "\x00"))
			}(conn)
		}
	}()
	return ln.Addr().String()
}

func TestClamAVScanner(t *testing.T) {
	ctx := context.Background()

	addr := fakeClamd(t, func(cmd string, body []byte) string {
		switch {
		case cmd == "zPING":
			return "PONG"
		case string(body) == "EICAR":
			return "stream: Eicar-Test-Signature FOUND"
		case string(body) == "broken":
			return "INSTREAM size limit exceeded. ERROR"
		}
		return "stream: OK"
	})
	scanner := antivirus.NewClamAVScanner(addr, 2*time.Second)

	t.Run("Ping reports availability", func(t *testing.T) {
		assert.True(t, scanner.Available(ctx))
	})

	t.Run("Clean upload passes", func(t *testing.T) {
		res := scanner.Scan(ctx, "cv.pdf", []byte("%PDF-1.7 resume"))
		assert.True(t, res.Clean())
		assert.Equal(t, "clamav", res.ScannerName)
	})

	t.Run("Detected threat is named", func(t *testing.T) {
		res := scanner.Scan(ctx, "cv.pdf", []byte("EICAR"))
		assert.True(t, res.Infected)
		assert.NoError(t, res.Err)
		assert.Equal(t, "Eicar-Test-Signature", res.ThreatName)
	})

	t.Run("Daemon errors fail closed", func(t *testing.T) {
		res := scanner.Scan(ctx, "cv.pdf", []byte("broken"))
		assert.True(t, res.Infected)
		assert.Error(t, res.Err)
	})

	t.Run("Unreachable daemon fails closed", func(t *testing.T) {
		down := antivirus.NewClamAVScanner("127.0.0.1:1", time.Second)
		assert.False(t, down.Available(ctx))
		assert.False(t, down.Scan(ctx, "cv.pdf", []byte("x")).Clean())
	})

	t.Run("Chain falls through to the next available scanner", func(t *testing.T) {
		chain := antivirus.NewChainScanner(antivirus.NewClamAVScanner("127.0.0.1:1", time.Second), antivirus.NoOpScanner{})
		assert.Equal(t, "noop", chain.Scan(ctx, "cv.pdf", []byte("EICAR")).ScannerName)

		empty := antivirus.NewChainScanner()
		assert.ErrorIs(t, empty.Scan(ctx, "cv.pdf", nil).Err, antivirus.ErrNoScanner)
	})
}
