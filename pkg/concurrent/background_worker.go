package concurrent

import "sync"

// JobI is a unit of work. ID must be unique in [0, jobs) of one worker pool, the result of
// the job is stored at that position.
type JobI interface {
	ID() int
}

type JobFunc[T JobI, G any] func(job T) G

type BackgroundWorker[T JobI, G any] struct {
	workers   int
	msgC      chan T
	waitGroup sync.WaitGroup
	jobFunc   JobFunc[T, G]
	results   []G
}

func NewBackgroundWorker[T JobI, G any](workers, buffer, jobs int, jobFunc JobFunc[T, G]) *BackgroundWorker[T, G] {
	if workers < 1 {
		workers = 1
	}
	return &BackgroundWorker[T, G]{
		workers: workers,
		msgC:    make(chan T, buffer),
		jobFunc: jobFunc,
		results: make([]G, jobs),
	}
}

func (bw *BackgroundWorker[T, G]) TriggerProcessing(jobData T) {
	bw.msgC <- jobData
}

func (bw *BackgroundWorker[T, G]) Start() {

	bw.waitGroup.Add(bw.workers)
	for i := 0; i < bw.workers; i++ {
		go func() {
			defer bw.waitGroup.Done()
			for jobData := range bw.msgC {
				// every job writes its own slot
				bw.results[jobData.ID()] = bw.jobFunc(jobData)
			}
		}()
	}
}

// Close stops accepting jobs and waits until every triggered job is done.
func (bw *BackgroundWorker[T, G]) Close() {
	close(bw.msgC)
	bw.waitGroup.Wait()
}

// Results returns job results ordered by job ID. only valid after Close.
func (bw *BackgroundWorker[T, G]) Results() []G {
	return bw.results
}
