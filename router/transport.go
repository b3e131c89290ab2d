package router

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const maxFrameSize = 65536

// dialSeqPacket opens a sequenced-packet UNIX-domain socket connected to
// path. The standard net package has no SOCK_SEQPACKET dialer, so the
// socket is created and connected directly through golang.org/x/sys/unix
// and the resulting file descriptor is handed to net.FileConn, which
// gives back an ordinary net.Conn whose Read calls each return exactly
// one queued record, with no length-prefix framing of our own needed.
func dialSeqPacket(path string) (net.Conn, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_SEQPACKET, 0)
	if err != nil {
		return nil, fmt.Errorf("socket: %w", err)
	}
	addr := &unix.SockaddrUnix{Name: path}
	if err := unix.Connect(fd, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("connect %s: %w", path, err)
	}
	file := os.NewFile(uintptr(fd), path)
	conn, err := net.FileConn(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("file conn %s: %w", path, err)
	}
	return conn, nil
}

// frame is one decoded-boundary read off a neighbor's socket, fanned into
// the single dispatch loop. err is io.EOF on clean neighbor shutdown, or
// any other transport error, which is fatal per the error handling design.
type frame struct {
	neighbor *Neighbor
	data     []byte
	err      error
}

// readLoop blocks reading whole records off n's socket and forwards each
// one onto out, one at a time, strictly in the order received. It is the
// only goroutine that touches n.conn for reads, preserving per-neighbor
// ordering; dispatch of each frame happens later, synchronously, on the
// single loop goroutine that drains out.
func readLoop(n *Neighbor, out chan<- frame) {
	buf := make([]byte, maxFrameSize)
	for {
		nread, err := n.conn.Read(buf)
		if err != nil {
			out <- frame{neighbor: n, err: err}
			return
		}
		data := make([]byte, nread)
		copy(data, buf[:nread])
		out <- frame{neighbor: n, data: data}
	}
}

func (r *Router) send(n *Neighbor, b []byte) {
	if _, err := n.conn.Write(b); err != nil {
		log.Errorf("%s: write failed: %v", n.Addr, err)
	}
}

// isEOF reports whether err signals a clean neighbor disconnect rather
// than a transport failure.
func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
