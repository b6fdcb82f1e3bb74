package server

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/typefield/suggest/internal/logger"
	"github.com/typefield/suggest/pkg/config"
	"github.com/typefield/suggest/pkg/lookup"
	"github.com/typefield/suggest/pkg/suggest"
)

var log = logger.New("server")

// Server handles the IPC for spelling suggestions
type Server struct {
	suggester *suggest.Suggester
	lookup    *lookup.Lookup
	cfg       *config.Config
	decoder   *msgpack.Decoder
	encoder   *msgpack.Encoder
}

// NewServer creates a new suggestion server using stdin/stdout for IPC
func NewServer(suggester *suggest.Suggester, lk *lookup.Lookup, cfg *config.Config) *Server {
	return &Server{
		suggester: suggester,
		lookup:    lk,
		cfg:       cfg,
		decoder:   msgpack.NewDecoder(os.Stdin),
		encoder:   msgpack.NewEncoder(os.Stdout),
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	log.Debug("Starting server.")

	// Signal that the server is ready
	s.send(StatusResponse{Status: "ready"})

	for {
		var request SuggestRequest
		if err := s.decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.send(ErrorResponse{Error: "Invalid msgpack request", Status: 400})
			continue
		}
		s.handleRequest(request)
	}
}

// handleRequest processes one decoded request
func (s *Server) handleRequest(request SuggestRequest) {
	switch request.Action {
	case "":
		s.handleSuggest(request)
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.send(ErrorResponse{ID: request.ID, Error: "Unknown action: " + request.Action, Status: 400})
	}
}

// handleSuggest validates the request, runs the suggester and sends the
// ranked candidates back.
func (s *Server) handleSuggest(request SuggestRequest) {
	word := request.Word
	if word == "" {
		s.send(ErrorResponse{ID: request.ID, Error: "Missing 'w' parameter", Status: 400})
		log.Debug("Word is empty in request")
		return
	}
	if len(word) > s.cfg.Server.MaxWordLen {
		s.send(ErrorResponse{ID: request.ID, Error: "Word exceeds maximum length", Status: 400})
		log.Debugf("Word is too long in request: %d bytes", len(word))
		return
	}

	limit := request.Limit
	if limit < 1 {
		limit = s.cfg.Suggest.DefaultLimit
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	response := SuggestResponse{ID: request.ID}
	if s.lookup.Check(word) {
		response.Correct = true
	} else {
		rank := uint16(1)
		for sug := range s.suggester.Suggestions(word) {
			response.Candidates = append(response.Candidates, SuggestCandidate{
				Word: sug.Text,
				Kind: string(sug.Kind),
				Rank: rank,
			})
			rank++
			if len(response.Candidates) >= limit {
				break
			}
		}
	}
	response.Count = len(response.Candidates)
	response.TimeTaken = time.Since(start).Microseconds()

	s.send(response)
}

// send marshals one response onto stdout.
func (s *Server) send(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}
