package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matt-g-everett/ledtween/animator"
	"github.com/matt-g-everett/ledtween/animator/animatortest"
	"github.com/matt-g-everett/ledtween/stream"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	animations := []stream.AnimationConfig{{
		Name:      "sweep",
		Keyframes: "{0%: 0; 100%: 9}",
		Duration:  1,
		Layer:     stream.LayerConfig{Kind: "cursor"},
	}}
	c, err := stream.NewController(animations,
		animator.WithScheduler(animatortest.NewScheduler()),
		animator.WithClock(animatortest.NewClock()),
		animator.WithDispatcher(animator.Inline))
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}

	s := httptest.NewServer(NewApi(c, "").Handler())
	t.Cleanup(s.Close)
	return s
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
}

func TestListAnimations(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Get(s.URL + "/animations")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var status []stream.Status
	decode(t, resp, &status)
	if len(status) != 1 || status[0].Name != "sweep" || status[0].State != "idle" {
		t.Errorf("status = %+v", status)
	}
}

func TestControlAnimation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path  string
		code  int
		state string
	}{
		{"/animations/sweep/play?skipDelay=true", http.StatusOK, "running"},
		{"/animations/sweep/pause", http.StatusOK, "paused"},
		{"/animations/sweep/cancel", http.StatusOK, "idle"},
		{"/animations/sweep/explode", http.StatusBadRequest, ""},
		{"/animations/missing/play", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		resp, err := http.Post(s.URL+tt.path, "application/json", nil)
		if err != nil {
			t.Fatalf("POST %s failed: %v", tt.path, err)
		}
		if resp.StatusCode != tt.code {
			resp.Body.Close()
			t.Errorf("POST %s: status = %d, expected %d", tt.path, resp.StatusCode, tt.code)
			continue
		}
		if tt.code != http.StatusOK {
			resp.Body.Close()
			continue
		}

		var status []stream.Status
		decode(t, resp, &status)
		if status[0].State != tt.state {
			t.Errorf("POST %s: state = %s, expected %s", tt.path, status[0].State, tt.state)
		}
	}
}

func TestControlRequiresPost(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Get(s.URL + "/animations/sweep/play")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}
}

func TestSampleEasing(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Get(s.URL + "/easing/in-quad?samples=3")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var c curve
	decode(t, resp, &c)
	if len(c.Samples) != 3 || c.Samples[0] != 0 || c.Samples[1] != 0.25 || c.Samples[2] != 1 {
		t.Errorf("samples = %v, expected [0 0.25 1]", c.Samples)
	}
}

func TestSampleEasingErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path string
		code int
	}{
		{"/easing/wobble", http.StatusNotFound},
		{"/easing/linear?samples=1", http.StatusBadRequest},
		{"/easing/linear?samples=lots", http.StatusBadRequest},
	}

	for _, tt := range tests {
		resp, err := http.Get(s.URL + tt.path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", tt.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.code {
			t.Errorf("GET %s: status = %d, expected %d", tt.path, resp.StatusCode, tt.code)
		}
	}
}

func TestListEasing(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Get(s.URL + "/easing")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}

	var names []string
	decode(t, resp, &names)
	if len(names) == 0 {
		t.Error("no easing names listed")
	}
}
