package cmd

import (
	"testing"
	"time"

	config "github.com/blobscan/indexer/configs"
	"github.com/stretchr/testify/assert"
)

func TestRunApi_DisabledReturns(t *testing.T) {
	originalConfig := config.Cfg.API
	t.Cleanup(func() { config.Cfg.API = originalConfig })
	config.Cfg.API = config.APIConfig{Enabled: false}

	done := make(chan struct{})
	go func() {
		RunApi(apiCmd, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		assert.Fail(t, "RunApi did not return with the API server disabled")
	}
}
