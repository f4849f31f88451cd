package notegen

import (
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"noteflow/internal/logger"
)

type implGenerator struct {
	host   string
	list   *retryablehttp.Client
	gen    *retryablehttp.Client
	logger logger.Logger
}

// New creates a Generator talking to the Ollama server at host.
// genTimeout bounds one generation request and should allow for
// multi-minute large-model inference. Transient HTTP failures (429 and
// 5xx) are retried with exponential backoff up to maxRetries times;
// this is the only retry policy in the application.
func New(host string, genTimeout time.Duration, maxRetries int, log logger.Logger) Generator {
	return &implGenerator{
		host:   strings.TrimRight(host, "/"),
		list:   newRetryClient(10*time.Second, maxRetries),
		gen:    newRetryClient(genTimeout, maxRetries),
		logger: log,
	}
}

func newRetryClient(timeout time.Duration, maxRetries int) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = maxRetries
	c.RetryWaitMin = 1 * time.Second
	c.RetryWaitMax = 30 * time.Second
	c.HTTPClient.Timeout = timeout
	c.Logger = nil
	return c
}
