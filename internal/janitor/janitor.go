package janitor

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"jobbify/internal/repository"
)

// locker is the distributed-lock slice of the Redis wrapper. With Redis down
// the wrapper grants the lock outright, so a single instance still sweeps on
// schedule; with Redis up, only one instance per tick gets through.
type locker interface {
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

const (
	lockKey = "janitor:cache-cleanup"
	lockTTL = 5 * time.Minute
)

// Janitor runs the scheduled expired-row sweep. It supplements the
// probabilistic cleanup on the feed path; with no cron spec configured the
// scheduler never starts and the hot path remains the only sweeper.
type Janitor struct {
	cacheRepo repository.JobCacheRepository
	lock      locker
	logger    *log.Logger
	spec      string
	cron      *cron.Cron
}

func New(cacheRepo repository.JobCacheRepository, lock locker, logger *log.Logger, spec string) *Janitor {
	return &Janitor{
		cacheRepo: cacheRepo,
		lock:      lock,
		logger:    logger,
		spec:      spec,
	}
}

func (j *Janitor) Start() error {
	if j == nil || j.spec == "" || j.cacheRepo == nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(j.spec, j.sweep); err != nil {
		return err
	}
	c.Start()
	j.cron = c

	if j.logger != nil {
		j.logger.Printf("[Janitor] scheduled cache cleanup spec=%q", j.spec)
	}
	return nil
}

func (j *Janitor) Stop() {
	if j == nil || j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
}

func (j *Janitor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if j.lock != nil {
		ok, err := j.lock.SetIfNotExists(ctx, lockKey, time.Now().UTC().Format(time.RFC3339), lockTTL)
		if err == nil && !ok {
			return
		}
	}

	n, err := j.cacheRepo.DeleteExpired(ctx)
	if err != nil {
		if j.logger != nil {
			j.logger.Printf("[Janitor] sweep failed: %v", err)
		}
		return
	}
	if j.logger != nil {
		j.logger.Printf("[Janitor] sweep removed %d expired rows", n)
	}
}
