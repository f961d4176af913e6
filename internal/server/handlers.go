// internal/server/handlers.go
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"pixisphere/internal/common/notify"

	"github.com/labstack/echo/v4"
)

const xmlHTTPRequest = "XMLHttpRequest"

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports ready once the first listing load has resolved.
func (s *Server) handleReady(c echo.Context) error {
	st := s.deps.Store.State()
	if !st.Loaded {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "loading",
			"loading": st.IsLoading,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "ready",
		"collection": len(st.Collection),
	})
}

// handleSearchInput feeds one keystroke into the search bar. Script
// requests get 202; a plain form submit is redirected to the results page.
func (s *Server) handleSearchInput(c echo.Context) error {
	q := c.FormValue("q")
	s.deps.SearchBar.Input(q)

	if c.Request().Header.Get("X-Requested-With") != xmlHTTPRequest {
		target := "/"
		if q != "" {
			target = "/?" + url.Values{"q": {q}}.Encode()
		}
		return c.Redirect(http.StatusSeeOther, target)
	}
	return c.JSON(http.StatusAccepted, map[string]string{
		"status":  "accepted",
		"query":   q,
		"settled": s.deps.SearchBar.Value(),
	})
}

// handleEvents streams broker messages as server-sent events until the
// client disconnects or the broker closes.
func (s *Server) handleEvents(c echo.Context) error {
	messages, unsubscribe := s.deps.Broker.Subscribe()
	defer unsubscribe()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// A new client gets the current state without waiting for a change.
	initial, err := json.Marshal(notify.EventFromState(s.deps.Store.State()))
	if err != nil {
		return err
	}
	if err := writeEvent(w, Message{Event: EventState, Data: initial}); err != nil {
		return nil
	}

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if err := writeEvent(w, msg); err != nil {
				return nil
			}
		}
	}
}

func writeEvent(w *echo.Response, msg Message) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data); err != nil {
		return err
	}
	w.Flush()
	return nil
}
