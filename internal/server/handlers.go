package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/waiteperspectives/eml/pkg/buildinfo"
	emlerrors "github.com/waiteperspectives/eml/pkg/errors"
	emlio "github.com/waiteperspectives/eml/pkg/io"
	"github.com/waiteperspectives/eml/pkg/pipeline"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// errorBody is the JSON body of every error response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	data, err := emlio.DemoYAML()
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.renderOptions(r)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}

	source, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, string(emlerrors.ErrCodeInvalidInput),
				"request body exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
			return
		}
		writeError(w, http.StatusBadRequest, string(emlerrors.ErrCodeInvalidInput), "read request body: "+err.Error())
		return
	}

	res, err := s.runner.Execute(r.Context(), source, opts)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}

	format := opts.Formats[0]
	cacheStatus := "miss"
	if res.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("X-EML-Nodes", strconv.Itoa(res.Stats.NodeCount))
	w.Header().Set("X-EML-Arrows", strconv.Itoa(res.Stats.ArrowCount))
	_, _ = w.Write(res.Artifacts[format])
}

// renderOptions merges the query string over the server defaults. A
// request renders exactly one format.
func (s *Server) renderOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	q := r.URL.Query()

	opts.Formats = nil
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	} else if len(s.defaults.Formats) > 0 {
		opts.Formats = []string{s.defaults.Formats[0]}
	}
	if t := q.Get("type"); t != "" {
		opts.VizType = t
	}
	for name, dst := range map[string]*bool{"arrowheads": &opts.Arrowheads, "detailed": &opts.Detailed} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, emlerrors.New(emlerrors.ErrCodeInvalidInput, "invalid %s %q", name, v)
		}
		*dst = b
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return opts, emlerrors.New(emlerrors.ErrCodeInvalidInput, "invalid scale %q", v)
		}
		opts.Scale = f
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// writePipelineError answers with the status for err's code.
func (s *Server) writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	code := emlerrors.GetCode(err)
	if code == "" {
		code = emlerrors.ErrCodeInternal
	}
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", requestIDFrom(r.Context()), "error", err)
	}
	writeError(w, status, string(code), emlerrors.UserMessage(err))
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case emlerrors.IsInput(err):
		return http.StatusBadRequest
	case emlerrors.Is(err, emlerrors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
