// Package api exposes the tagger over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"experimentallabor.de/gertag/pos"
	"experimentallabor.de/gertag/types"
	"experimentallabor.de/gertag/utils"
	"github.com/rs/zerolog"
)

const maxBodySize = 10 << 20

type Tagger interface {
	Tag(words []string) ([]types.TaggedToken, error)
}

// Request serves tag requests with a single loaded model.
type Request struct {
	Tagger       Tagger
	ModelID      string
	MaxSentences int
	Logger       *zerolog.Logger
}

func (req *Request) logger(r *http.Request) zerolog.Logger {
	base := defaultLogger
	if req.Logger != nil {
		base = *req.Logger
	}
	return makeRequestLogger(base, r)
}

// Handler routes POST /tag and GET /healthz.
func (req *Request) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tag", req.ProcessData)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func (req *Request) ProcessData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logger := req.logger(r)

	if r.Method != http.MethodPost {
		logger.Error().Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		writeResponse(w, http.StatusMethodNotAllowed, types.TagResponse{Error: "only POST is allowed"})
		return
	}

	msg, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not read request body")
		writeResponse(w, http.StatusBadRequest, types.TagResponse{Error: "could not read request body"})
		return
	}

	var request types.TagRequest
	if err := json.Unmarshal(msg, &request); err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not decode request body")
		writeResponse(w, http.StatusBadRequest, types.TagResponse{Error: err.Error()})
		return
	}
	sentences := request.Words()
	response := types.TagResponse{ID: request.ID, ModelID: req.ModelID}
	if req.MaxSentences > 0 && len(sentences) > req.MaxSentences {
		response.Error = fmt.Sprintf("request has %d sentences, at most %d are allowed", len(sentences), req.MaxSentences)
		logger.Error().Int("status", http.StatusRequestEntityTooLarge).Msg(response.Error)
		writeResponse(w, http.StatusRequestEntityTooLarge, response)
		return
	}

	logger.Info().Str("id", request.ID).Int("sentences", len(sentences)).Msg("Tagging request from API")
	response.Sentences = make([][]types.TaggedToken, len(sentences))
	for i, words := range sentences {
		tagged, err := req.tag(words)
		if err != nil {
			status := http.StatusInternalServerError
			var noTag *pos.NoTagError
			if errors.As(err, &noTag) {
				status = http.StatusUnprocessableEntity
			}
			logger.Err(err).Int("status", status).Int("sentence", i).Msg("Could not tag sentence")
			writeResponse(w, status, types.TagResponse{
				ID:      request.ID,
				ModelID: req.ModelID,
				Error:   fmt.Sprintf("sentence %d: %s", i, err),
			})
			return
		}
		response.Sentences[i] = tagged
	}
	writeResponse(w, http.StatusOK, response)
	logger.Info().Int("status", http.StatusOK).Msg("Finished processing request")
}

func (req *Request) tag(words []string) (tagged []types.TaggedToken, err error) {
	defer utils.RecoverWithError(&err)
	return req.Tagger.Tag(words)
}

func writeResponse(w http.ResponseWriter, status int, response types.TagResponse) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}
