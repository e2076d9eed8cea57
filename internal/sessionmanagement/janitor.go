package sessionmanagement

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"
)

// DefaultSessionTTL is how long a session may sit idle before the janitor
// drops it. Override with SESSION_TTL_MINUTES.
const DefaultSessionTTL = 2 * time.Hour

// Janitor periodically expires abandoned sessions from a registry.
type Janitor struct {
	scheduler *gocron.Scheduler
	registry  *SessionRegistry
	ttl       time.Duration
}

// NewJanitor creates a janitor for the given registry, reading the TTL from
// the environment.
func NewJanitor(registry *SessionRegistry) *Janitor {
	ttl := DefaultSessionTTL
	if s := os.Getenv("SESSION_TTL_MINUTES"); s != "" {
		if minutes, err := strconv.Atoi(s); err == nil && minutes > 0 {
			ttl = time.Duration(minutes) * time.Minute
		} else {
			log.Printf("Warning: SESSION_TTL_MINUTES is not a positive integer (%q), using default.", s)
		}
	}
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		registry:  registry,
		ttl:       ttl,
	}
}

// Start schedules the sweep and runs the scheduler in the background.
func (j *Janitor) Start() {
	j.scheduler.Every(10).Minutes().Do(j.sweep)
	j.scheduler.StartAsync()
	log.Printf("Session janitor started (TTL %s).", j.ttl)
}

// Stop terminates the scheduler.
func (j *Janitor) Stop() {
	j.scheduler.Stop()
}

func (j *Janitor) sweep() {
	if removed := j.registry.ExpireIdle(j.ttl); removed > 0 {
		log.Printf("Session janitor removed %d idle session(s).", removed)
	}
}
