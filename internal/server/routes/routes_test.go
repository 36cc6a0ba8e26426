package routes_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"

	"github.com/sciorbit/orbit/internal/server"
	mid "github.com/sciorbit/orbit/internal/server/middleware"
	"github.com/sciorbit/orbit/internal/session"
	"github.com/sciorbit/orbit/pkg/ai"
	"github.com/sciorbit/orbit/pkg/graph"
)

type fakeAI struct {
	analyzeCalls int
	suggestCalls int
	analyzeErr   error
}

func (f *fakeAI) Analyze(_ context.Context, titles []string, _ ...ai.GenerateOption) (*ai.AnalyzeResult, error) {
	f.analyzeCalls++
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return &ai.AnalyzeResult{
		ContextSummary: "summary for " + strings.Join(titles, ", "),
		CorrelatedPapers: []graph.Paper{
			{Title: "Correlated One", RelevanceScore: 90},
			{Title: "Correlated Two", RelevanceScore: 30},
		},
		AuthorContextPapers: []graph.Paper{
			{Title: "Author One", RelevanceScore: 60},
		},
	}, nil
}

func (f *fakeAI) Suggest(_ context.Context, partial string, _ ...ai.GenerateOption) ([]string, error) {
	f.suggestCalls++
	return []string{partial + " completed"}, nil
}

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i any) error {
	return tv.v.Struct(i)
}

func newTestServer(t *testing.T, client ai.ResearchAIClient) *echo.Echo {
	t.Helper()
	store := session.NewStore(time.Hour)
	t.Cleanup(store.Close)

	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	e.Use(mid.AppContextMiddleware(store, client))
	server.RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, e *echo.Echo) session.Snapshot {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/sessions",
		`{"title": "Attention Is All You Need", "width": 800, "height": 600}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d, body %s", rec.Code, rec.Body.String())
	}
	var snap session.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("parse snapshot: %v", err)
	}
	return snap
}

func TestCreateSession(t *testing.T) {
	fake := &fakeAI{}
	e := newTestServer(t, fake)

	snap := createSession(t, e)
	if snap.ID == "" {
		t.Error("snapshot has no session id")
	}
	if len(snap.Results) != 3 {
		t.Errorf("got %d results, want 3", len(snap.Results))
	}
	if len(snap.Frame.Nodes) != 3 || len(snap.Frame.Roots) != 1 {
		t.Errorf("frame has %d nodes and %d roots, want 3 and 1",
			len(snap.Frame.Nodes), len(snap.Frame.Roots))
	}
	if fake.analyzeCalls != 1 {
		t.Errorf("analyze called %d times, want 1", fake.analyzeCalls)
	}
}

func TestCreateSessionValidation(t *testing.T) {
	e := newTestServer(t, &fakeAI{})

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"width": 800}`},
		{"negative width", `{"title": "x", "width": -800, "height": 600}`},
		{"negative height", `{"title": "x", "width": 800, "height": -600}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := doJSON(e, http.MethodPost, "/api/sessions", tt.body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateSessionAnalysisFailure(t *testing.T) {
	fake := &fakeAI{analyzeErr: &ai.AnalysisError{Err: errors.New("model unavailable")}}
	e := newTestServer(t, fake)

	rec := doJSON(e, http.MethodPost, "/api/sessions", `{"title": "anything"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestAddDuplicateIsNoOp(t *testing.T) {
	fake := &fakeAI{}
	e := newTestServer(t, fake)
	snap := createSession(t, e)

	// The session root is already in the context; adding it again must
	// not grow the context or trigger a re-analysis.
	rec := doJSON(e, http.MethodPost, "/api/sessions/"+snap.ID+"/events",
		`{"type": "add", "paper": {"title": "Attention Is All You Need"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Added *bool `json:"added"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Added == nil || *resp.Added {
		t.Errorf("added = %v, want false", resp.Added)
	}
	if fake.analyzeCalls != 1 {
		t.Errorf("analyze called %d times, want 1 (duplicate must not re-analyze)", fake.analyzeCalls)
	}
}

func TestAddNewPaperReanalyzes(t *testing.T) {
	fake := &fakeAI{}
	e := newTestServer(t, fake)
	snap := createSession(t, e)

	rec := doJSON(e, http.MethodPost, "/api/sessions/"+snap.ID+"/events",
		`{"type": "add", "paper": {"title": "Correlated One", "relevanceScore": 90}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Added    *bool             `json:"added"`
		Snapshot *session.Snapshot `json:"snapshot"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Added == nil || !*resp.Added {
		t.Fatalf("added = %v, want true", resp.Added)
	}
	if resp.Snapshot == nil || len(resp.Snapshot.ContextPapers) != 2 {
		t.Fatalf("snapshot context = %+v, want 2 papers", resp.Snapshot)
	}
	if fake.analyzeCalls != 2 {
		t.Errorf("analyze called %d times, want 2", fake.analyzeCalls)
	}
}

func TestDoubleClickPivots(t *testing.T) {
	fake := &fakeAI{}
	e := newTestServer(t, fake)
	snap := createSession(t, e)

	rec := doJSON(e, http.MethodPost, "/api/sessions/"+snap.ID+"/events",
		`{"type": "dblclick", "paper": {"title": "Correlated Two", "relevanceScore": 30}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Snapshot *session.Snapshot `json:"snapshot"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Snapshot == nil {
		t.Fatal("pivot returned no snapshot")
	}
	got := resp.Snapshot.ContextPapers
	if len(got) != 1 || got[0].Title != "Correlated Two" {
		t.Errorf("context after pivot = %+v, want single root 'Correlated Two'", got)
	}
}

func TestClickThenBackground(t *testing.T) {
	e := newTestServer(t, &fakeAI{})
	snap := createSession(t, e)
	base := "/api/sessions/" + snap.ID + "/events"

	rec := doJSON(e, http.MethodPost, base, `{"type": "click", "node": "0"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("click status = %d", rec.Code)
	}
	var clicked struct {
		Frame *graph.Frame `json:"frame"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &clicked); err != nil {
		t.Fatal(err)
	}
	if clicked.Frame == nil || !clicked.Frame.Nodes[0].MenuVisible {
		t.Error("clicked node does not show its menu")
	}

	rec = doJSON(e, http.MethodPost, base, `{"type": "background"}`)
	var cleared struct {
		Frame *graph.Frame `json:"frame"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &cleared); err != nil {
		t.Fatal(err)
	}
	if cleared.Frame.Nodes[0].MenuVisible {
		t.Error("background click did not clear the active node")
	}
	if cleared.Frame.SelectedPaper != nil {
		t.Error("background click did not clear the detail overlay")
	}
}

func TestEventValidation(t *testing.T) {
	e := newTestServer(t, &fakeAI{})
	snap := createSession(t, e)
	base := "/api/sessions/" + snap.ID + "/events"

	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"type": "wiggle"}`},
		{"click without node", `{"type": "click"}`},
		{"add without paper", `{"type": "add"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := doJSON(e, http.MethodPost, base, tt.body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestResizeSession(t *testing.T) {
	e := newTestServer(t, &fakeAI{})
	snap := createSession(t, e)

	rec := doJSON(e, http.MethodPost, "/api/sessions/"+snap.ID+"/resize",
		`{"width": 1200, "height": 900}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/sessions/"+snap.ID, "")
	var after session.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatal(err)
	}
	if after.Dimensions.Width != 1200 || after.Dimensions.Height != 900 {
		t.Errorf("dimensions = %+v, want 1200x900", after.Dimensions)
	}
}

func TestDeleteSession(t *testing.T) {
	e := newTestServer(t, &fakeAI{})
	snap := createSession(t, e)

	if rec := doJSON(e, http.MethodDelete, "/api/sessions/"+snap.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodGet, "/api/sessions/"+snap.ID, ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestGetSessionSVG(t *testing.T) {
	e := newTestServer(t, &fakeAI{})
	snap := createSession(t, e)

	rec := doJSON(e, http.MethodGet, "/api/sessions/"+snap.ID+"/svg", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Errorf("body is not svg: %.60s", rec.Body.String())
	}
}

func TestSuggestShortQuerySkipsModel(t *testing.T) {
	fake := &fakeAI{}
	e := newTestServer(t, fake)

	rec := doJSON(e, http.MethodGet, "/api/suggest?q=ab", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Titles []string `json:"titles"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Titles) != 0 {
		t.Errorf("titles = %v, want empty", resp.Titles)
	}
	if fake.suggestCalls != 0 {
		t.Errorf("suggest called %d times for a short query, want 0", fake.suggestCalls)
	}
}

func TestSuggest(t *testing.T) {
	fake := &fakeAI{}
	e := newTestServer(t, fake)

	rec := doJSON(e, http.MethodGet, "/api/suggest?q=attention", "")
	var resp struct {
		Titles []string `json:"titles"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Titles) != 1 || resp.Titles[0] != "attention completed" {
		t.Errorf("titles = %v", resp.Titles)
	}
}
