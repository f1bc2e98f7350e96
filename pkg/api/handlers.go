package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/barnframe/pkg/buildinfo"
	"github.com/matzehuels/barnframe/pkg/design"
	"github.com/matzehuels/barnframe/pkg/errors"
	"github.com/matzehuels/barnframe/pkg/export"
	"github.com/matzehuels/barnframe/pkg/space"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// ValidateRequest is the body of POST /v1/validate.
type ValidateRequest struct {
	Design json.RawMessage       `json:"design"`
	Change space.DimensionChange `json:"change"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	d, err := s.readDesign(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.runner.Analyze(r.Context(), d)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setCacheHeader(w, res.CacheInfo.BeamsHit && res.CacheInfo.SnapshotHit)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBeams(w http.ResponseWriter, r *http.Request) {
	d, err := s.readDesign(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, hit, err := s.runner.BeamsWithCacheInfo(r.Context(), d)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	d, err := s.readDesign(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	snap, hit, err := s.runner.SnapshotWithCacheInfo(r.Context(), d)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req ValidateRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode validate request"))
		return
	}
	if len(req.Design) == 0 {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "design is required"))
		return
	}
	if req.Change.Empty() {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "change must set at least one of width, length or height"))
		return
	}

	d, err := design.Parse(req.Design, design.FormatJSON)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.runner.Validate(r.Context(), d, req.Change)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleProtection(w http.ResponseWriter, r *http.Request) {
	d, err := s.readDesign(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	prot, err := s.runner.Protection(r.Context(), d)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prot)
}

func (s *Server) handleAccessGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := export.FormatDOT
	if v := q.Get("format"); v != "" {
		parsed, err := export.ParseFormat(v)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		f = parsed
	}
	var opts export.Options
	if v := q.Get("detailed"); v != "" {
		detailed, err := strconv.ParseBool(v)
		if err != nil {
			s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "detailed must be a boolean"))
			return
		}
		opts.Detailed = detailed
	}

	d, err := s.readDesign(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, hit, err := s.runner.AccessGraphWithCacheInfo(r.Context(), d, f, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	w.Header().Set("Content-Type", f.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// readDesign decodes the request body as a design. The format follows the
// Content-Type header and defaults to JSON.
func (s *Server) readDesign(w http.ResponseWriter, r *http.Request) (*design.Design, error) {
	body, err := s.readBody(w, r)
	if err != nil {
		return nil, err
	}
	return design.Parse(body, formatOf(r))
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return body, nil
}

func formatOf(r *http.Request) design.Format {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/toml":
		return design.FormatTOML
	case "application/yaml", "application/x-yaml", "text/yaml":
		return design.FormatYAML
	default:
		return design.FormatJSON
	}
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
