package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
)

// APIPrefix is the path prefix the fake service is mounted under
const APIPrefix = "/api/v1"

// FakeResponse is a canned reply of the fake translation service
type FakeResponse struct {
	Status      int
	JSON        any    // encoded as the body when set
	Body        []byte // raw body when JSON is nil
	ContentType string
}

// FakeAPI is an in-process stand-in for the translation service
type FakeAPI struct {
	Server *httptest.Server

	mu        sync.Mutex
	responses map[string]FakeResponse
	calls     map[string]int
	requests  map[string][]map[string]any
	hook      func(path string)
}

// NewFakeAPI starts a fake service that is closed with the test
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		responses: make(map[string]FakeResponse),
		calls:     make(map[string]int),
		requests:  make(map[string][]map[string]any),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL clients should use
func (f *FakeAPI) URL() string {
	return f.Server.URL + APIPrefix
}

// Respond sets the reply for path (e.g. "/translate")
func (f *FakeAPI) Respond(path string, r FakeResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = r
}

// SetHook installs a function run before each reply, e.g. to block
func (f *FakeAPI) SetHook(hook func(path string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hook = hook
}

// Calls returns how often path was requested
func (f *FakeAPI) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

// TotalCalls returns the number of requests across all paths
func (f *FakeAPI) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// LastRequest returns the decoded JSON body of the latest request to path
func (f *FakeAPI) LastRequest(path string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	reqs := f.requests[path]
	if len(reqs) == 0 {
		return nil
	}
	return reqs[len(reqs)-1]
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, APIPrefix)

	var body map[string]any
	raw, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(raw, &body)

	f.mu.Lock()
	f.calls[path]++
	f.requests[path] = append(f.requests[path], body)
	resp, ok := f.responses[path]
	hook := f.hook
	f.mu.Unlock()

	if hook != nil {
		hook(path)
	}

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not Found"}`))
		return
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}

	if resp.JSON != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(resp.JSON)
		return
	}

	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.WriteHeader(status)
	w.Write(resp.Body)
}
