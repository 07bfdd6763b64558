package cancellable

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/randomizedcoder/go-cancellable/internal/tick"
)

// DefaultName labels a driver started without WithName.
const DefaultName = "service"

type config struct {
	name     string
	logger   logrus.FieldLogger
	observer Observer
	report   time.Duration
	every    int
}

func defaultConfig() config {
	return config{
		name:     DefaultName,
		logger:   logrus.StandardLogger(),
		observer: NopObserver{},
	}
}

// Option configures a driver.
type Option func(*config)

// WithName sets the name used in log fields and metric labels.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets the logger. The driver adds service and driver_id fields.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers an Observer, e.g. metrics.NewObserver().
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithReportInterval logs a progress line at most once per interval.
// Zero disables progress lines.
func WithReportInterval(d time.Duration) Option {
	return func(c *config) {
		c.report = d
	}
}

// WithReportBatch makes the report ticker read the clock only every n
// iterations. Suits services whose Run returns in nanoseconds, such as
// in-memory sources. n <= 1 checks the clock every iteration.
func WithReportBatch(n int) Option {
	return func(c *config) {
		c.every = n
	}
}

// reportTicker picks the ticker gating progress lines.
func (c config) reportTicker() tick.Ticker {
	if c.report > 0 && c.every > 1 {
		return tick.NewBatch(c.report, c.every)
	}
	return tick.New(c.report)
}
