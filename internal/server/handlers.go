package server

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/matzehuels/commitgraph/pkg/buildinfo"
	"github.com/matzehuels/commitgraph/pkg/errors"
	"github.com/matzehuels/commitgraph/pkg/pipeline"
	"github.com/matzehuels/commitgraph/pkg/template"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

// preset summarizes a template for clients choosing one.
type preset struct {
	Name        string               `json:"name"`
	Default     bool                 `json:"default,omitempty"`
	Orientation template.Orientation `json:"orientation"`
	Mode        template.Mode        `json:"mode"`
	MergeStyle  template.MergeStyle  `json:"mergeStyle"`
	Colors      []string             `json:"colors"`
	Arrows      bool                 `json:"arrows"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	names := template.Names()
	out := make([]preset, 0, len(names))
	for _, name := range names {
		t, _ := template.Lookup(name)
		out = append(out, preset{
			Name:        name,
			Default:     name == template.DefaultPreset,
			Orientation: t.Orientation,
			Mode:        t.Mode,
			MergeStyle:  t.Branch.MergeStyle,
			Colors:      t.Colors,
			Arrows:      t.Arrow.Height > 0,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleRender renders the posted script in one format.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{
		Formats:      []string{format},
		Template:     q.Get("template"),
		Background:   q.Get("background"),
		NoFileImport: true,
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBody))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	sc, err := pipeline.Parse(body)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.cfg.Runner.Execute(r.Context(), sc, opts)
	if err != nil {
		s.cfg.Logger.Debug("render failed", "err", err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleLiveCurrent(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Watch == "" {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no script is being watched"))
		return
	}
	msg, ok := s.live.current()
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no render yet"))
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// rebuild renders the watched script and pushes the result to live
// clients. Failures are pushed too, so clients can show them.
func (s *Server) rebuild(ctx context.Context) {
	sc, err := pipeline.Load(s.cfg.Watch)
	if err != nil {
		s.cfg.Logger.Warn("load watched script", "err", err)
		s.live.publish(ctx, errorMessage(err))
		return
	}
	res, err := s.cfg.Runner.Execute(ctx, sc, pipeline.Options{
		Formats:  []string{pipeline.FormatJSON},
		Template: s.cfg.Template,
		BaseDir:  filepath.Dir(s.cfg.Watch),
	})
	if err != nil {
		s.cfg.Logger.Warn("render watched script", "err", err)
		s.live.publish(ctx, errorMessage(err))
		return
	}
	s.live.publish(ctx, renderMessage(res.Artifacts[pipeline.FormatJSON]))
}
