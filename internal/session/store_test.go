package session

import (
	"testing"
	"time"

	"github.com/sciorbit/orbit/pkg/graph"
)

func TestStoreCreateAndGet(t *testing.T) {
	st := NewStore(time.Hour)
	defer st.Close()

	s, err := st.Create(graph.Paper{Title: "Root"}, graph.Dimensions{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if s.ID == "" {
		t.Fatal("session has empty id")
	}

	got, ok := st.Get(s.ID)
	if !ok || got != s {
		t.Errorf("Get(%q) = %v, %v", s.ID, got, ok)
	}
	if _, ok := st.Get("missing"); ok {
		t.Error("Get of unknown id reported ok")
	}
}

func TestStoreDeleteClosesSession(t *testing.T) {
	st := NewStore(time.Hour)
	defer st.Close()

	s, err := st.Create(graph.Paper{Title: "Root"}, graph.Dimensions{Width: 100, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	st.Delete(s.ID)

	if _, ok := st.Get(s.ID); ok {
		t.Error("deleted session still retrievable")
	}
	if s.AddContext(graph.Paper{Title: "X"}) {
		t.Error("deleted session still accepts commands")
	}
}

func TestStoreCloseShutsDownAll(t *testing.T) {
	st := NewStore(time.Hour)
	a, _ := st.Create(graph.Paper{Title: "A"}, graph.Dimensions{Width: 10, Height: 10})
	b, _ := st.Create(graph.Paper{Title: "B"}, graph.Dimensions{Width: 10, Height: 10})

	st.Close()

	for _, s := range []*Session{a, b} {
		if s.AddContext(graph.Paper{Title: "X"}) {
			t.Errorf("session %s alive after store close", s.ID)
		}
	}
}
