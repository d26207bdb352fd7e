package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/netsampler/flowkey/flow"
	"github.com/netsampler/flowkey/format"
	"github.com/netsampler/flowkey/key"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const maxParseBody = 64 << 10

// Config configures the HTTP server.
type Config struct {
	Addr string
	// ContentType is sent with formatted /parse responses.
	ContentType string
}

// DefinitionsSource returns the loaded flow definitions, nil when none.
type DefinitionsSource func() *flow.Set

// ContentTypes maps format names to response content types.
var ContentTypes = map[string]string{
	"json": "application/json",
	"yaml": "application/yaml",
	"text": "text/plain; charset=utf-8",
	"pb":   "application/octet-stream",
}

func write(wr http.ResponseWriter, status int, body []byte) {
	wr.WriteHeader(status)
	if _, err := wr.Write(body); err != nil {
		log.WithError(err).Error("error writing HTTP")
	}
}

func writeJSON(wr http.ResponseWriter, status int, value interface{}) {
	body, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		log.WithError(err).Error("error writing JSON body")
		write(wr, http.StatusInternalServerError, []byte("Internal Server Error\n"))
		return
	}
	wr.Header().Set("Content-Type", "application/json")
	write(wr, status, body)
}

// HealthHandler returns a handler for the health endpoint.
func HealthHandler(isReady func() bool) http.HandlerFunc {
	return func(wr http.ResponseWriter, r *http.Request) {
		if !isReady() {
			write(wr, http.StatusServiceUnavailable, []byte("Not OK\n"))
			return
		}
		write(wr, http.StatusOK, []byte("OK\n"))
	}
}

// DefinitionsHandler returns the loaded flow definitions as JSON.
func DefinitionsHandler(definitions DefinitionsSource) http.HandlerFunc {
	return func(wr http.ResponseWriter, r *http.Request) {
		s := definitions()
		if s == nil {
			write(wr, http.StatusNotFound, []byte("Not Found\n"))
			return
		}
		writeJSON(wr, http.StatusOK, s.Document())
	}
}

// ErrorDocument describes a failed parse.
func ErrorDocument(err error) map[string]interface{} {
	doc := map[string]interface{}{
		"error": err.Error(),
	}
	var perr *key.ParseError
	if !errors.As(err, &perr) {
		return doc
	}
	doc["kind"] = perr.Kind.String()
	doc["offset"] = perr.Offset
	doc["remaining"] = perr.Remaining
	if perr.Expected != "" {
		doc["expected"] = perr.Expected
	}
	if perr.Cause != nil {
		doc["cause"] = ErrorDocument(perr.Cause)
	}
	return doc
}

func definitionText(r *http.Request) (string, error) {
	if text := r.URL.Query().Get("keys"); text != "" {
		return text, nil
	}
	if r.Method != http.MethodPost {
		return "", nil
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return r.PostFormValue("keys"), nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxParseBody))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// ParseHandler parses the keys parameter (or POST body) and replies with the
// formatted definition, or 400 with the error details.
func ParseHandler(cfg Config, parser key.Parser, formatter format.FormatInterface) http.HandlerFunc {
	return func(wr http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			wr.Header().Set("Allow", "GET, POST")
			write(wr, http.StatusMethodNotAllowed, []byte("Method Not Allowed\n"))
			return
		}
		text, err := definitionText(r)
		if err != nil {
			writeJSON(wr, http.StatusBadRequest, ErrorDocument(err))
			return
		}
		if text == "" {
			writeJSON(wr, http.StatusBadRequest, map[string]interface{}{"error": "missing keys"})
			return
		}

		def, err := parser.Parse(text)
		if err != nil {
			log.WithFields(log.Fields{
				"keys":  text,
				"error": err,
			}).Debug("rejected definition")
			writeJSON(wr, http.StatusBadRequest, ErrorDocument(err))
			return
		}

		_, body, err := formatter.Format(def)
		if err != nil {
			log.WithError(err).Error("error formatting definition")
			write(wr, http.StatusInternalServerError, []byte("Internal Server Error\n"))
			return
		}
		if cfg.ContentType != "" {
			wr.Header().Set("Content-Type", cfg.ContentType)
		}
		write(wr, http.StatusOK, body)
	}
}

// New constructs a mux with metrics, health, definitions and parse endpoints.
func New(cfg Config, definitions DefinitionsSource, parser key.Parser, formatter format.FormatInterface, isReady func() bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/__health", HealthHandler(isReady))
	if definitions != nil {
		mux.HandleFunc("/definitions", DefinitionsHandler(definitions))
	}
	if parser != nil && formatter != nil {
		mux.HandleFunc("/parse", ParseHandler(cfg, parser, formatter))
	}

	return mux
}
