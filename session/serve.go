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

package session

import (
	"errors"
	"net"
	"time"

	"github.com/satchel-db/satchel/frame"
)

const quit = "QUIT"

// Serve owns conn for its whole lifetime: it reads framed requests,
// drives them through s, and writes responses back, until the client
// sends QUIT, a fatal frame error occurs, or the connection drops.
func Serve(conn net.Conn, s *Session) {
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(frame.IdleTimeout))
	reader := frame.NewReader(conn)

	for {
		message, err := reader.ReadMessage()
		if err != nil {
			_ = conn.SetReadDeadline(time.Now().Add(frame.IdleTimeout))
			if !writeFrameError(conn, s, err) {
				return
			}
			continue
		}

		_ = conn.SetReadDeadline(time.Now().Add(frame.IdleTimeout))

		if message == quit {
			return
		}

		response := s.Handle(message)
		if _, err := conn.Write([]byte(response)); err != nil {
			if s.Logger != nil {
				s.Logger.Printf("session=%s write failed: %v", s.ID, err)
			}
			return
		}
	}
}

// writeFrameError writes a frame error back to the client, logs it, and
// returns true if the connection should stay open (recoverable errors
// only). Silent errors (the peer shut the connection down) are neither
// written nor logged and return false.
func writeFrameError(conn net.Conn, s *Session, err error) bool {
	var fe *frame.Error
	if !errors.As(err, &fe) {
		if s.Logger != nil {
			s.Logger.Printf("session=%s closing on unrecognized error: %v", s.ID, err)
		}
		return false
	}

	if fe.Silent() {
		return false
	}

	_, _ = conn.Write([]byte(frame.ErrPrefix + fe.Error()))
	if s.Logger != nil {
		s.Logger.Printf("session=%s frame error: %v", s.ID, fe)
	}
	return fe.Recoverable()
}
