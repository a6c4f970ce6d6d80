package daemon

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientAgainstService(t *testing.T) {
	s, _ := seededService(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	c := NewClient(strings.TrimPrefix(srv.URL, "http://"))
	ctx := context.Background()

	if _, err := c.Report(ctx); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Report before first poll err = %v, want ErrNotReady", err)
	}

	s.pollOnce()

	st, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.PollCount != 1 || st.Summary.Goals != 2 {
		t.Errorf("Status = %+v", st)
	}

	r, err := c.Report(ctx)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if r.Summary.TotalSaved != 66000 {
		t.Errorf("TotalSaved = %v, want 66000", r.Summary.TotalSaved)
	}

	hc, err := c.GoalHealth(ctx, "bike")
	if err != nil {
		t.Fatalf("GoalHealth: %v", err)
	}
	if hc.CompletionPercentage != 90 {
		t.Errorf("CompletionPercentage = %v, want 90", hc.CompletionPercentage)
	}
	if _, err := c.GoalHealth(ctx, "ghost"); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("GoalHealth(ghost) err = %v, want ErrGoalNotFound", err)
	}
}

func TestNewClientNormalizesAddr(t *testing.T) {
	cases := map[string]string{
		"127.0.0.1:8787":         "http://127.0.0.1:8787",
		" http://localhost:9/ ":  "http://localhost:9",
		"https://goals.lan:8787": "https://goals.lan:8787",
	}
	for in, want := range cases {
		if got := NewClient(in).baseURL; got != want {
			t.Errorf("NewClient(%q).baseURL = %q, want %q", in, got, want)
		}
	}
}
