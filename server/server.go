// Package server serves URL decompositions over HTTP as the same flat JSON
// objects the command line prints.
package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/julienschmidt/httprouter"
	"github.com/vizee/urlparts/encoding/jsonobj"
	"github.com/vizee/urlparts/inspect"
	"github.com/vizee/urlparts/internal/ioutil"
	"github.com/vizee/urlparts/log"
)

const DefaultMaxBodySize = 64 * 1024

type Config struct {
	Addr        string
	MaxBodySize int64
}

type Server struct {
	cfg    Config
	router *httprouter.Router
}

func New(cfg Config) *Server {
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}
	s := &Server{
		cfg:    cfg,
		router: httprouter.New(),
	}
	s.router.GET("/parse", s.handleParse)
	s.router.POST("/parse", s.handleParseBody)
	s.router.GET("/version", s.handleVersion)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	log.Debugf("Route %s %s", req.Method, req.URL.Path)
	s.router.ServeHTTP(w, req)
}

func (s *Server) ListenAndServe() error {
	log.Infof("listening: %s", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s)
}

func writeJSON(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

func writeError(w http.ResponseWriter, status int, err error) {
	o := jsonobj.New()
	o.Add("error", err.Error())
	writeJSON(w, status, o.Finalize())
}

func optionsFromQuery(q url.Values) (inspect.Options, error) {
	opts := inspect.Options{Base: q.Get("base")}
	for _, flag := range []struct {
		name string
		v    *bool
	}{
		{"encode", &opts.Encode},
		{"idna", &opts.IDNA},
	} {
		s := q.Get(flag.name)
		if s == "" {
			continue
		}
		v, err := strconv.ParseBool(s)
		if err != nil {
			return opts, errors.Wrapf(err, "query parameter %s", flag.name)
		}
		*flag.v = v
	}
	return opts, nil
}

func (s *Server) respond(w http.ResponseWriter, input string, q url.Values) {
	opts, err := optionsFromQuery(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	r, err := inspect.Parse(input, opts)
	if err != nil {
		log.Debugf("inspect %q: %v", input, err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, r.JSON())
}

func (s *Server) handleParse(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	q := req.URL.Query()
	if !q.Has("url") {
		writeError(w, http.StatusBadRequest, errors.New("missing url parameter"))
		return
	}
	s.respond(w, q.Get("url"), q)
}

func (s *Server) handleParseBody(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	body, err := ioutil.ReadLimited(req.Body, req.ContentLength, s.cfg.MaxBodySize)
	if err != nil {
		if errors.Is(err, ioutil.ErrTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
		} else {
			log.Errorf("read body of %s: %v", req.URL.Path, err)
			writeError(w, http.StatusBadRequest, err)
		}
		return
	}
	s.respond(w, strings.TrimSpace(string(body)), req.URL.Query())
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	o := jsonobj.New()
	o.Add("version", inspect.EngineVersion())
	writeJSON(w, http.StatusOK, o.Finalize())
}
