package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/thenvoi/mcp-server/internal/protocol"
)

// maxFrameSize bounds a single stdio envelope.
const maxFrameSize = 1024 * 1024

// ServeStdio runs the duplex binding: newline-framed JSON envelopes on
// stdin/stdout, one peer, envelopes processed strictly in order. It
// returns when stdin closes or the context is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.serveStream(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serveStream(ctx context.Context, in io.Reader, out io.Writer) error {
	log := s.log.Sub("stdio")

	// The duplex binding has exactly one peer, so one implicit session
	// covers the whole stream.
	sess := s.sessions.Register()
	defer s.sessions.Deregister(sess.ID)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)

	log.Info().Msg("listening for protocol messages on stdin")

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp *protocol.Response
		var req protocol.Request
		if err := json.Unmarshal(line, &req); err != nil {
			log.Warn().Err(err).Msg("parse error")
			e := protocol.NewError(nil, protocol.CodeParseError, "Parse error", err.Error())
			resp = &e
		} else {
			resp = s.Handle(ctx, sess, req)
		}

		if resp == nil {
			continue
		}
		if err := writeFrame(out, *resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("reading stdin: %w", err)
	}
	log.Info().Msg("stdin closed, shutting down")
	return nil
}

// writeFrame encodes one envelope followed by a newline.
func writeFrame(w io.Writer, resp protocol.Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
