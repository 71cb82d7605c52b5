package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/matt-g-everett/ledtween/easing"
	"github.com/matt-g-everett/ledtween/stream"
	"github.com/matt-g-everett/ledtween/util"
)

const (
	defaultSamples = 61
	maxSamples     = 1001
)

type Api struct {
	controller *stream.Controller
	static     string
}

// NewApi creates an Api controlling c. When static is not empty, the files
// under it are served from "/".
func NewApi(c *stream.Controller, static string) *Api {
	a := new(Api)
	a.controller = c
	a.static = static
	return a
}

// Handler returns the HTTP routes.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /animations", a.listAnimations)
	mux.HandleFunc("POST /animations/{name}/{action}", a.controlAnimation)
	mux.HandleFunc("GET /easing", a.listEasing)
	mux.HandleFunc("GET /easing/{name}", a.sampleEasing)
	if a.static != "" {
		mux.Handle("/", http.FileServer(http.Dir(a.static)))
	}
	return mux
}

// Serve listens on addr until the server fails.
func (a *Api) Serve(addr string) error {
	log.Printf("Listening on %s...", addr)
	return http.ListenAndServe(addr, a.Handler())
}

func (a *Api) listAnimations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.controller.Status())
}

func (a *Api) controlAnimation(w http.ResponseWriter, r *http.Request) {
	cmd := stream.Command{
		Name:      r.PathValue("name"),
		Action:    r.PathValue("action"),
		SkipDelay: r.URL.Query().Get("skipDelay") == "true",
	}

	err := a.controller.HandleCommand(cmd)
	switch {
	case errors.Is(err, stream.ErrUnknownAnimation):
		writeError(w, http.StatusNotFound, err)
		return
	case errors.Is(err, stream.ErrUnknownAction):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	log.Printf("HTTP %s %s", cmd.Action, cmd.Name)
	writeJSON(w, http.StatusOK, a.controller.Status())
}

func (a *Api) listEasing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, easing.Names())
}

type curve struct {
	Name    string    `json:"name"`
	Samples []float64 `json:"samples"`
}

func (a *Api) sampleEasing(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	fn, err := easing.Lookup(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	samples := defaultSamples
	if s := r.URL.Query().Get("samples"); s != "" {
		samples, err = strconv.Atoi(s)
		if err != nil || samples < 2 || samples > maxSamples {
			writeError(w, http.StatusBadRequest, errors.New("samples must be between 2 and 1001"))
			return
		}
	}

	writeJSON(w, http.StatusOK, curve{Name: name, Samples: util.SampleCurve(fn, samples)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
