package dnamat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

func newFakePartService(t *testing.T) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()

	r.HandleFunc("/parts/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := mux.Vars(req)["id"]
		if id == "missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(externalPartPayload{
			DNA:         "acgtacgtacgt",
			SourceChr:   "ext:" + id,
			Description: "",
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/candidates", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("breed") == "boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]ExternalCandidate{
			{PartID: "US_ADH1", Description: "prior ADH1 upstream", Seq: "AAAA"},
		})
	}).Methods(http.MethodGet)

	return httptest.NewServer(r)
}

func TestHTTPExternalPartResolverFetchSequence(t *testing.T) {
	srv := newFakePartService(t)
	defer srv.Close()

	resolver := NewHTTPExternalPartResolver(srv.URL, nil)
	ppp := PPP{Reversed: false}

	slice, err := resolver.FetchSequence(nil, ppp, "XYZ123")
	if err != nil {
		t.Fatalf("FetchSequence() returned error: %v", err)
	}
	if slice.DNA != "ACGTACGTACGT" {
		t.Errorf("DNA = %q, want %q", slice.DNA, "ACGTACGTACGT")
	}
	if slice.SourceChr != "ext:XYZ123" {
		t.Errorf("SourceChr = %q, want %q", slice.SourceChr, "ext:XYZ123")
	}
	if slice.Description != "XYZ123" {
		t.Errorf("Description = %q, want the part ID as a fallback", slice.Description)
	}
}

func TestHTTPExternalPartResolverReversed(t *testing.T) {
	srv := newFakePartService(t)
	defer srv.Close()

	resolver := NewHTTPExternalPartResolver(srv.URL, nil)
	slice, err := resolver.FetchSequence(nil, PPP{Reversed: true}, "XYZ123")
	if err != nil {
		t.Fatalf("FetchSequence() returned error: %v", err)
	}
	if slice.DNA != reverseComplement("ACGTACGTACGT") {
		t.Errorf("DNA = %q, want the reverse complement", slice.DNA)
	}
	if slice.Description != "!XYZ123" {
		t.Errorf("Description = %q, want a leading !", slice.Description)
	}
}

func TestHTTPExternalPartResolverNotFound(t *testing.T) {
	srv := newFakePartService(t)
	defer srv.Close()

	resolver := NewHTTPExternalPartResolver(srv.URL, nil)
	if _, err := resolver.FetchSequence(nil, PPP{}, "missing"); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}

func TestHTTPCandidateProxyFetchCandidates(t *testing.T) {
	srv := newFakePartService(t)
	defer srv.Close()

	proxy := NewHTTPCandidateProxy(nil)
	candidates := proxy.FetchCandidates(srv.URL+"/candidates", "US_ADH1", "UPSTREAM")
	if len(candidates) != 1 || candidates[0].PartID != "US_ADH1" {
		t.Errorf("candidates = %+v, want one US_ADH1 candidate", candidates)
	}
}

func TestHTTPCandidateProxyDegradesOnFailure(t *testing.T) {
	srv := newFakePartService(t)
	defer srv.Close()

	proxy := NewHTTPCandidateProxy(nil)
	candidates := proxy.FetchCandidates(srv.URL+"/candidates", "US_ADH1", "boom")
	if candidates != nil {
		t.Errorf("candidates = %+v, want nil on a server error", candidates)
	}
}

func TestHTTPCandidateProxyDegradesOnUnreachableHost(t *testing.T) {
	proxy := NewHTTPCandidateProxy(&http.Client{Timeout: 200 * time.Millisecond})
	candidates := proxy.FetchCandidates("http://127.0.0.1:1/candidates", "US_ADH1", "UPSTREAM")
	if candidates != nil {
		t.Errorf("candidates = %+v, want nil for an unreachable proxy", candidates)
	}
}

func TestCachedCandidateProxyFallsThroughWithoutRedis(t *testing.T) {
	srv := newFakePartService(t)
	defer srv.Close()

	base := NewHTTPCandidateProxy(nil)
	cached := NewCachedCandidateProxy(base, nil, time.Minute)

	candidates := cached.FetchCandidates(srv.URL+"/candidates", "US_ADH1", "UPSTREAM")
	if len(candidates) != 1 || candidates[0].PartID != "US_ADH1" {
		t.Errorf("candidates = %+v, want one US_ADH1 candidate via fallthrough", candidates)
	}
}

func TestCandidateCacheKeyIsStableAndDiscriminating(t *testing.T) {
	a := candidateCacheKey("http://proxy", "US_ADH1", "UPSTREAM")
	b := candidateCacheKey("http://proxy", "US_ADH1", "UPSTREAM")
	c := candidateCacheKey("http://proxy", "DS_ADH1", "DOWNSTREAM")

	if a != b {
		t.Error("candidateCacheKey should be deterministic for identical inputs")
	}
	if a == c {
		t.Error("candidateCacheKey should differ for different inputs")
	}
}
