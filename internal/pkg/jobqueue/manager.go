package jobqueue

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/removealist/removealist/internal/pkg/billing"
	"github.com/removealist/removealist/internal/pkg/database"
	"github.com/removealist/removealist/internal/pkg/env"
)

// Manager manages the global job queue and background tasks
type Manager struct {
	queue       *Queue
	sweepTicker *time.Ticker
	stopCh      chan struct{}
	wg          sync.WaitGroup
	mu          sync.Mutex
	running     bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		workerCount := 2
		if v, err := strconv.Atoi(env.GetEnv("JOB_WORKERS", "2")); err == nil && v > 0 {
			workerCount = v
		}

		globalManager = &Manager{
			queue:  NewQueue(workerCount, billing.NewServiceFromDB(database.GetDB())),
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the job queue and background tasks
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[JobQueue Manager] Starting job queue and background tasks")

	m.queue.Start()

	sweepInterval := 1 * time.Hour
	if v, err := strconv.Atoi(env.GetEnv("SWEEP_INTERVAL_MINUTES", "60")); err == nil && v > 0 {
		sweepInterval = time.Duration(v) * time.Minute
	}
	m.sweepTicker = time.NewTicker(sweepInterval)
	m.wg.Add(1)
	go m.sweepWorker()

	log.Info("[JobQueue Manager] Started successfully")
}

// Stop stops the job queue and background tasks
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[JobQueue Manager] Stopping job queue and background tasks...")

	if m.sweepTicker != nil {
		m.sweepTicker.Stop()
	}

	close(m.stopCh)
	m.running = false

	m.wg.Wait()
	m.queue.Stop()

	log.Info("[JobQueue Manager] Stopped successfully")
}

// sweepWorker periodically enqueues an expiry sweep job
func (m *Manager) sweepWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Sweep worker stopping")
			return
		case <-m.sweepTicker.C:
			payload := SubscriptionSweepJobPayload{RequestedAt: time.Now()}
			if _, err := m.queue.EnqueueJob(JobTypeSubscriptionSweep, payload.ToMap()); err != nil {
				log.Errorf("[JobQueue Manager] Failed to enqueue sweep job: %v", err)
			}
		}
	}
}

// RunSweepOnce exposes a manual trigger for a single expiry sweep (admin use).
func (m *Manager) RunSweepOnce() error {
	payload := SubscriptionSweepJobPayload{RequestedAt: time.Now()}
	_, err := m.queue.EnqueueJob(JobTypeSubscriptionSweep, payload.ToMap())
	return err
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
