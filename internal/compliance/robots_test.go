package compliance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRobotsCacheDisallowedPath(t *testing.T) {
	var robotsFetches atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsFetches.Add(1)
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rc := NewRobotsCache("boilerdata-test/1.0")
	ctx := context.Background()

	assert.True(t, rc.Allowed(ctx, srv.URL+"/docs/manual.pdf"))
	assert.False(t, rc.Allowed(ctx, srv.URL+"/private/manual.pdf"))
	assert.True(t, rc.Allowed(ctx, srv.URL+"/other.pdf"))

	assert.Equal(t, int32(1), robotsFetches.Load(), "robots.txt fetched once per host")
}

func TestRobotsCacheMissingRobotsAllows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	rc := NewRobotsCache("boilerdata-test/1.0")
	assert.True(t, rc.Allowed(context.Background(), srv.URL+"/anything.pdf"))
}

func TestRobotsCacheUnreachableHostAllows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	rc := NewRobotsCache("boilerdata-test/1.0")
	assert.True(t, rc.Allowed(context.Background(), url+"/doc.pdf"))
}

func TestRobotsCacheMalformedURL(t *testing.T) {
	rc := NewRobotsCache("boilerdata-test/1.0")
	assert.False(t, rc.Allowed(context.Background(), "::not-a-url"))
	assert.False(t, rc.Allowed(context.Background(), "relative/path.pdf"))
}
