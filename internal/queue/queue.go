package queue

import (
	"log"
	"sync"
)

type Job struct {
	Fn   func() error
	Errc chan error
}

// Manager runs queued jobs on a fixed pool of workers. With a single worker it
// doubles as a serialization point: jobs execute one at a time in enqueue order.
type Manager struct {
	JobQueue   chan Job
	MaxWorkers int
	wg         sync.WaitGroup
}

func NewManager(queueSize int, maxWorkers int) *Manager {
	manager := &Manager{
		JobQueue:   make(chan Job, queueSize),
		MaxWorkers: maxWorkers,
	}
	manager.startWorkers()
	return manager
}

func (m *Manager) startWorkers() {
	for i := 0; i < m.MaxWorkers; i++ {
		m.wg.Add(1)
		go func(workerID int) {
			defer m.wg.Done()
			for job := range m.JobQueue {
				err := job.Fn()
				if job.Errc != nil {
					job.Errc <- err
				}
			}
			log.Printf("queue: worker %d stopped", workerID)
		}(i)
	}
}

func (m *Manager) Enqueue(job Job) {
	m.JobQueue <- job
}

// Run enqueues fn and blocks until a worker has executed it.
func (m *Manager) Run(fn func() error) error {
	errc := make(chan error, 1)
	m.Enqueue(Job{Fn: fn, Errc: errc})
	return <-errc
}

func (m *Manager) Shutdown() {
	close(m.JobQueue)
	m.wg.Wait()
}
