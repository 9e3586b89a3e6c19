package session

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
)

// responseWriter finalizes the session right before the response is
// committed. Changes made after the first write are not saved.
type responseWriter struct {
	http.ResponseWriter
	finalize func()
	done     bool
}

func (w *responseWriter) commit() {
	if !w.done {
		w.done = true
		w.finalize()
	}
}

func (w *responseWriter) WriteHeader(status int) {
	w.commit()
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *responseWriter) Flush() {
	w.commit()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack implements http.Hijacker. The session is not saved for a hijacked
// connection: the handler owns the raw conn and no headers are sent for it.
func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("session: hijack: %w", http.ErrNotSupported)
	}
	conn, brw, err := h.Hijack()
	if err != nil {
		return nil, nil, err
	}
	w.done = true
	return conn, brw, nil
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
