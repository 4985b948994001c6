// Copyright 2026 The Satchel Authors.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package frame

import (
	"bufio"
	"errors"
	"io"
	"net"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	satchelutf8 "github.com/satchel-db/satchel/utf8"
)

const (
	// Buffer is the chunk size read from the connection per Read call.
	Buffer = 1024
	// MaxMessage is the largest message size that's tolerated as an
	// honest oversized request (reported back, connection stays open).
	MaxMessage = 2048
	// MaxSocketBuffer bounds how much unread, already-buffered data is
	// tolerated before a connection is treated as abusive and closed.
	MaxSocketBuffer = 8192
	// ETX terminates a message on the wire.
	ETX = '\x03'
	// ErrPrefix is prepended to every error response written back to a
	// client.
	ErrPrefix = "Err: "
)

// ReadTimeout bounds how long a read may take once the first byte of a
// message has arrived.
const ReadTimeout = 10 * time.Second

// IdleTimeout bounds how long a connection may sit between messages.
const IdleTimeout = 20 * time.Second

// Reader buffers a net.Conn and splits it into ETX-terminated messages.
// It arms IdleTimeout while waiting for a message to start, switches to
// the tighter ReadTimeout once the first byte arrives, and rejects any
// message that grows past MaxMessage bytes.
type Reader struct {
	conn net.Conn
	br   *bufio.Reader
}

// NewReader wraps conn. The caller is responsible for setting the
// initial idle deadline before the first call to ReadMessage.
func NewReader(conn net.Conn) *Reader {
	return &Reader{conn: conn, br: bufio.NewReaderSize(conn, MaxSocketBuffer)}
}

// ReadMessage blocks until a full ETX-terminated message arrives, the
// size limits are violated, or the connection fails. On success the
// ETX terminator is stripped and the idle deadline is armed again for
// the next message.
func (r *Reader) ReadMessage() (string, error) {
	var message strings.Builder
	buf := make([]byte, Buffer)
	firstRead := true

	for {
		n, err := r.br.Read(buf)
		if err != nil {
			return "", classifyReadErr(err)
		}

		if firstRead {
			_ = r.conn.SetReadDeadline(time.Now().Add(ReadTimeout))
			firstRead = false
		}

		chunk := buf[:n]
		if !utf8.Valid(chunk) {
			return "", &Error{Kind: MessageUTF8Error}
		}
		message.Write(chunk)

		if strings.ContainsRune(message.String(), ETX) {
			break
		}

		if message.Len() == 0 {
			return "", &Error{Kind: Shutdown}
		}

		if message.Len() > MaxMessage {
			return "", r.handleOverrun()
		}
	}

	full := message.String()
	if strings.Count(full, string(rune(ETX))) > 1 {
		idx := strings.IndexRune(full, ETX)
		pollution := strings.ReplaceAll(full[idx:], string(rune(ETX)), "")
		return "", &Error{Kind: MessagePolluted, Pollution: pollution}
	}

	_ = r.conn.SetReadDeadline(time.Now().Add(IdleTimeout))
	return strings.ReplaceAll(full, string(rune(ETX)), ""), nil
}

// handleOverrun inspects how much more data the client has already
// pushed beyond MaxMessage. Go's net.Conn has no kernel-level MSG_PEEK,
// so this uses the buffered-but-unconsumed byte count in the bufio
// reader as the equivalent signal: data the client already sent that
// we haven't had to actively read to observe.
func (r *Reader) handleOverrun() error {
	buffered := r.br.Buffered()
	if buffered > MaxSocketBuffer-(MaxMessage+Buffer) {
		return &Error{Kind: MessageExceedsMaxLength}
	}

	peeked, _ := r.br.Peek(buffered)
	runes := satchelutf8.RuneLength(peeked)
	_, _ = r.br.Discard(buffered)
	return &Error{Kind: MessageTooLong, Bytes: buffered + MaxMessage + Buffer, Runes: runes}
}

func classifyReadErr(err error) error {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return &Error{Kind: Timeout}
	}
	if errors.Is(err, io.EOF) {
		return &Error{Kind: Shutdown}
	}
	if strings.Contains(err.Error(), "connection reset") {
		return &Error{Kind: ShutdownFromClient}
	}
	return &Error{Kind: Unknown, Err: err}
}
