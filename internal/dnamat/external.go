package dnamat

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"lukechampine.com/blake3"
)

// ExternalPartResolver is the external-part collaborator contract: given the
// active sequence library, the requesting PPP, and a part ID, it returns a
// ready-made slice. The real resolver and its backing HTTP service are out
// of scope here; httpExternalPartResolver is a plausible client against such
// a service.
type ExternalPartResolver interface {
	FetchSequence(lib SeqLibrary, ppp PPP, partID string) (DNASlice, error)
}

// CandidateProxy is the external-part candidate proxy contract:
// fetch_candidates(url, name, breed_code), best-effort.
type CandidateProxy interface {
	FetchCandidates(proxyURL, insertName, breedCode string) []ExternalCandidate
}

// httpExternalPartResolver fetches a part's sequence from a configured
// external-part service over plain HTTP GET + JSON.
type httpExternalPartResolver struct {
	baseURL string
	client  *http.Client
}

// NewHTTPExternalPartResolver returns a resolver against baseURL. A nil
// client gets a default with a 10s timeout.
func NewHTTPExternalPartResolver(baseURL string, client *http.Client) *httpExternalPartResolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &httpExternalPartResolver{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type externalPartPayload struct {
	DNA         string `json:"dna"`
	SourceChr   string `json:"sourceChr"`
	Description string `json:"description"`
}

func (r *httpExternalPartResolver) FetchSequence(lib SeqLibrary, ppp PPP, partID string) (DNASlice, error) {
	req, err := http.NewRequest(http.MethodGet, r.baseURL+"/parts/"+url.PathEscape(partID), nil)
	if err != nil {
		return DNASlice{}, fmt.Errorf("build external part request for %q: %w", partID, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return DNASlice{}, fmt.Errorf("fetch external part %q: %w", partID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DNASlice{}, fmt.Errorf("fetch external part %q: status %d", partID, resp.StatusCode)
	}

	var payload externalPartPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return DNASlice{}, fmt.Errorf("decode external part %q: %w", partID, err)
	}

	dna := strings.ToUpper(payload.DNA)
	desc := payload.Description
	if desc == "" {
		desc = partID
	}
	if ppp.Reversed {
		dna = reverseComplement(dna)
		desc = "!" + desc
	}

	template := dna
	return DNASlice{
		DNA:         dna,
		SourceChr:   payload.SourceChr,
		SourceFrom:  0,
		SourceTo:    len(dna) - 1,
		SourceFwd:   true,
		DestFwd:     !ppp.Reversed,
		Template:    &template,
		Amplified:   false,
		SliceType:   SliceRegular,
		Breed:       BreedX,
		Description: desc,
	}, nil
}

// httpCandidateProxy queries an external-part candidate service over plain
// GET + JSON. Any failure degrades to an empty candidate list, never a
// fatal error.
type httpCandidateProxy struct {
	client *http.Client
}

// NewHTTPCandidateProxy returns a candidate proxy client. A nil client gets
// a default with a 10s timeout.
func NewHTTPCandidateProxy(client *http.Client) *httpCandidateProxy {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &httpCandidateProxy{client: client}
}

func (p *httpCandidateProxy) FetchCandidates(proxyURL, insertName, breedCode string) []ExternalCandidate {
	req, err := http.NewRequest(http.MethodGet, proxyURL, nil)
	if err != nil {
		dlog.Warnw("failed to build candidate proxy request", "url", proxyURL, "err", err)
		return nil
	}
	q := req.URL.Query()
	q.Set("name", insertName)
	q.Set("breed", breedCode)
	req.URL.RawQuery = q.Encode()

	resp, err := p.client.Do(req)
	if err != nil {
		dlog.Warnw("candidate proxy unreachable", "url", proxyURL, "err", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		dlog.Warnw("candidate proxy returned non-200", "url", proxyURL, "status", resp.StatusCode)
		return nil
	}

	var candidates []ExternalCandidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		dlog.Warnw("failed to decode candidate proxy response", "url", proxyURL, "err", err)
		return nil
	}
	return candidates
}

// cachedCandidateProxy wraps a CandidateProxy with an optional redis cache,
// keyed by a blake3 hash of the request. A nil or unreachable redis client
// falls through to the live proxy call rather than failing the lookup.
type cachedCandidateProxy struct {
	next  CandidateProxy
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedCandidateProxy wraps next with a redis-backed cache. rdb may be
// nil, in which case every call falls straight through to next.
func NewCachedCandidateProxy(next CandidateProxy, rdb *redis.Client, ttl time.Duration) *cachedCandidateProxy {
	return &cachedCandidateProxy{next: next, redis: rdb, ttl: ttl}
}

func candidateCacheKey(proxyURL, insertName, breedCode string) string {
	sum := blake3.Sum256([]byte(proxyURL + "\x00" + insertName + "\x00" + breedCode))
	return "gslc:candidates:" + hex.EncodeToString(sum[:])
}

func (p *cachedCandidateProxy) FetchCandidates(proxyURL, insertName, breedCode string) []ExternalCandidate {
	if p.redis == nil {
		return p.next.FetchCandidates(proxyURL, insertName, breedCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := candidateCacheKey(proxyURL, insertName, breedCode)
	if cached, err := p.redis.Get(ctx, key).Result(); err == nil {
		var candidates []ExternalCandidate
		if jsonErr := json.Unmarshal([]byte(cached), &candidates); jsonErr == nil {
			return candidates
		}
	}

	candidates := p.next.FetchCandidates(proxyURL, insertName, breedCode)

	var cacheErr error
	payload, err := json.Marshal(candidates)
	cacheErr = multierr.Append(cacheErr, err)
	if err == nil {
		cacheErr = multierr.Append(cacheErr, p.redis.Set(ctx, key, payload, p.ttl).Err())
	}
	if cacheErr != nil {
		dlog.Debugw("failed to populate candidate cache", "key", key, "err", cacheErr)
	}
	return candidates
}
