package webhook

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/quilitane/cunilympiades/internal/domain/game"
	"github.com/quilitane/cunilympiades/internal/infrastructure/seed"
	"github.com/quilitane/cunilympiades/internal/platform/logging"
	"github.com/quilitane/cunilympiades/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

var errWebhookRejected = crerr.New("webhook endpoint rejected snapshot")

type BroadcasterConfig struct {
	URL            string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Broadcaster pushes every applied snapshot to an external display endpoint
// (the original front end polled the backend; this pushes instead). It is a
// SnapshotSink: best effort, guarded by a circuit breaker so a dead endpoint
// does not back up the persistence pool.
type Broadcaster struct {
	client         *fasthttp.Client
	url            string
	token          string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewBroadcaster(cfg BroadcasterConfig, logger *logging.Logger) (*Broadcaster, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, crerr.New("webhook url is required")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, crerr.Newf("webhook url %s must be http or https", url)
	}
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Broadcaster{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		url:            url,
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}, nil
}

func (b *Broadcaster) Name() string {
	return "webhook"
}

func (b *Broadcaster) Persist(ctx context.Context, dataset game.Dataset) error {
	if b.circuitEnabled {
		if err := b.breaker.Allow(); err != nil {
			b.logger.WarnContext(ctx, "webhook circuit breaker rejected snapshot", "state", b.breaker.State())
			return crerr.Wrap(err, "webhook is temporarily unavailable")
		}
	}

	err := b.send(dataset)
	if b.circuitEnabled {
		if err != nil {
			b.breaker.RecordFailure()
		} else {
			b.breaker.RecordSuccess()
		}
	}
	return err
}

func (b *Broadcaster) send(dataset game.Dataset) error {
	teamsRaw, err := seed.EncodeTeams(dataset.Teams)
	if err != nil {
		return err
	}
	challengesRaw, err := seed.EncodeChallenges(dataset.Challenges)
	if err != nil {
		return err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.WriteString(`{"teams":`)
	_, _ = buf.Write(teamsRaw)
	_, _ = buf.WriteString(`,"challenges":`)
	_, _ = buf.Write(challengesRaw)
	_, _ = buf.WriteString(`}`)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(b.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	req.SetBody(buf.Bytes())

	if err := b.client.DoTimeout(req, resp, b.timeout); err != nil {
		return crerr.Wrapf(err, "post snapshot to %s", b.url)
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		return crerr.Wrapf(errWebhookRejected, "status=%d", status)
	}

	return nil
}
