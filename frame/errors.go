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

// Package frame reads ETX-terminated request messages off a TCP
// connection, enforcing a maximum message size and idle/read timeouts.
package frame

import "fmt"

// Kind classifies why ReadMessage failed. Some kinds are recoverable
// (the connection stays open, the caller just reports the error back
// to the client); others mean the connection must be closed.
type Kind int

const (
	// MessageTooLong means the message exceeded MaxMessage but not
	// MaxSocketBuffer: recoverable, the oversized message is discarded.
	MessageTooLong Kind = iota
	// MessageExceedsMaxLength means the client is sending far more than
	// MaxMessage allows: fatal, the connection is closed.
	MessageExceedsMaxLength
	// MessagePolluted means more than one ETX byte appeared in a single
	// message: recoverable.
	MessagePolluted
	// MessageUTF8Error means a chunk wasn't valid UTF-8: fatal.
	MessageUTF8Error
	// Timeout means no data arrived before the read deadline: fatal.
	Timeout
	// Shutdown means the peer closed the connection with no bytes sent
	// in the current message: fatal, no error is written back.
	Shutdown
	// ShutdownFromClient means the peer reset the connection: fatal, no
	// error is written back.
	ShutdownFromClient
	// Unknown wraps any other I/O error: fatal.
	Unknown
)

// Error is returned by Reader.ReadMessage.
type Error struct {
	Kind Kind
	// Bytes is set for MessageTooLong: the estimated total size of the
	// oversized message once its overrun is accounted for.
	Bytes int
	// Runes is set for MessageTooLong alongside Bytes: the same overrun
	// measured in runes, for audit logging of non-ASCII payloads.
	Runes int
	// Pollution is set for MessagePolluted: the tail of the message
	// starting at the first ETX byte, with ETX bytes stripped.
	Pollution string
	// Err wraps the underlying I/O error for Unknown.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case MessageTooLong:
		return fmt.Sprintf("message was longer than allowed %d bytes, (%d)", MaxMessage, e.Bytes)
	case MessageExceedsMaxLength:
		return fmt.Sprintf("message exceeded max length %d, connection closed", MaxSocketBuffer)
	case MessagePolluted:
		return fmt.Sprintf("message is polluted. Polluted Data: '%s'", e.Pollution)
	case MessageUTF8Error:
		return "invalid utf8, connection closed"
	case Timeout:
		return fmt.Sprintf("connection timed out, read_timeout:%s idle_timeout:%s", ReadTimeout, IdleTimeout)
	case Shutdown, ShutdownFromClient:
		return "connection closed"
	default:
		return fmt.Sprintf("unknown connection error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Recoverable reports whether the connection should stay open after
// this error (only the response differs; the read loop continues).
func (e *Error) Recoverable() bool {
	return e.Kind == MessageTooLong || e.Kind == MessagePolluted
}

// Silent reports whether the connection must close after this error
// without writing a response (the peer is already gone).
func (e *Error) Silent() bool {
	return e.Kind == Shutdown || e.Kind == ShutdownFromClient
}
