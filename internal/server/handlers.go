package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iw2rmb/doxx/document"
	"github.com/iw2rmb/doxx/measure"
)

type createRequest struct {
	Text string `json:"text"`
}

type sessionResponse struct {
	ID       string       `json:"id"`
	Document DocumentView `json:"document"`
}

type commandsResponse struct {
	Document DocumentView `json:"document"`
	Changes  []ChangeView `json:"changes"`
}

// commandError reports the command of a batch that failed.
type commandError struct {
	Index int
	Err   error
}

func (e *commandError) Error() string { return fmt.Sprintf("command %d: %v", e.Index, e.Err) }
func (e *commandError) Unwrap() error { return e.Err }

// handleCreateSession starts a session, optionally typing and reflowing
// initial text.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	body, err := s.readBody(w, r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	d := document.New()
	if req.Text != "" {
		d, err = s.initialDocument(req.Text)
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	sess, err := s.sessions.Create(d)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	s.log.Info("session created", "session", sess.ID, "version", d.Version)
	writeJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID, Document: viewOf(d)})
}

func (s *Server) initialDocument(text string) (document.Document, error) {
	d, err := s.engine.Apply(document.New(), document.TypeText{Text: text})
	if err != nil {
		return d, err
	}
	d, err = measure.SettleAll(s.engine, d, s.opts.MaxReflowPasses)
	if err != nil {
		return d, err
	}
	return s.engine.Apply(d, document.SetCursor{})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Document: viewOf(sess.Snapshot())})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.sessions.Delete(id); err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	s.log.Info("session deleted", "session", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleCommands applies one command spec or a list of them. The batch is
// atomic: when any command fails the session keeps its previous snapshot.
// With ?reflow=true the paragraph under the cursor is settled after a batch
// that changed the content.
func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	specs, err := decodeSpecs(body)
	if err != nil {
		jsonError(w, "invalid command body: "+err.Error(), http.StatusBadRequest)
		return
	}
	reflow, _ := strconv.ParseBool(r.URL.Query().Get("reflow"))

	var changes []ChangeView
	d, err := sess.Update(func(d document.Document) (document.Document, error) {
		changes = changes[:0]
		before := d
		for i, spec := range specs {
			cmd, err := spec.Command()
			if err != nil {
				return before, &commandError{Index: i, Err: err}
			}
			next, err := s.engine.Apply(d, cmd)
			if err != nil {
				return before, &commandError{Index: i, Err: err}
			}
			if ch, ok := document.NewChange(document.ChangeSourceRemote, cmd.Kind(), d, next); ok {
				changes = append(changes, changeViewOf(ch))
			}
			d = next
		}
		if reflow && before.Content.Text() != d.Content.Text() {
			return measure.Settle(s.engine, d, d.Cursor, s.opts.MaxReflowPasses)
		}
		return d, nil
	})
	if err != nil {
		s.log.Warn("command batch rejected", "session", sess.ID, "err", err)
		var cerr *commandError
		if errors.As(err, &cerr) {
			writeJSON(w, statusOf(cerr.Err), map[string]any{"error": err.Error(), "index": cerr.Index})
			return
		}
		jsonError(w, err.Error(), statusOf(err))
		return
	}
	if changes == nil {
		changes = []ChangeView{}
	}
	s.log.Debug("commands applied", "session", sess.ID, "count", len(specs), "version", d.Version)
	writeJSON(w, http.StatusOK, commandsResponse{Document: viewOf(d), Changes: changes})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, document.ErrUnknownCommand), errors.Is(err, document.ErrInvalidCommand):
		return http.StatusBadRequest
	case errors.Is(err, document.ErrDimsMismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return data, nil
}

// decodeSpecs accepts a single command object or an array of them.
func decodeSpecs(data []byte) ([]document.CommandSpec, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty body")
	}
	if data[0] == '[' {
		var specs []document.CommandSpec
		if err := json.Unmarshal(data, &specs); err != nil {
			return nil, err
		}
		return specs, nil
	}
	var spec document.CommandSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	return []document.CommandSpec{spec}, nil
}
