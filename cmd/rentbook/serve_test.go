package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownLogsEveryServerError(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	busy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
	}))
	defer busy.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if resp, err := http.Get(busy.URL); err == nil {
			resp.Body.Close()
		}
	}()
	<-entered

	logger, hook := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	shutdown(ctx, logger, namedServer{"HTTP", nil}, namedServer{"Metrics", busy.Config})
	close(release)
	<-done

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Contains(t, entry.Message, "Metrics server shutdown")
	assert.Contains(t, entry.Message, context.Canceled.Error())
}
