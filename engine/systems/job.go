package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

type jobResult struct {
	task   metadata.JobTask
	result interface{}
	err    error
}

/**
 * @brief A small worker pool. Jobs run on the workers, their callbacks are
 * queued and run from Update so they can safely use the renderer.
 */
type JobSystem struct {
	numWorkers int
	jobQueue   chan metadata.JobTask
	results    chan jobResult
	wg         sync.WaitGroup

	mutex  sync.Mutex
	closed bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan metadata.JobTask, channelSize),
		results:    make(chan jobResult, channelSize+numWorkers),
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				result, err := job.OnStart(job.InputParams)
				if err != nil {
					core.LogError(err.Error())
				}
				js.results <- jobResult{task: job, result: result, err: err}
			}
		}()
	}
}

/**
 * @brief Shuts the job system down. Queued jobs still run, their callbacks
 * are dropped.
 */
func (js *JobSystem) Shutdown() error {
	js.mutex.Lock()
	if js.closed {
		js.mutex.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.mutex.Unlock()

	// workers may block on a full results channel
	done := make(chan struct{})
	go func() {
		js.wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-js.results:
		case <-done:
			for len(js.results) > 0 {
				<-js.results
			}
			return nil
		}
	}
}

/**
 * @brief Runs the callbacks of finished jobs. Should happen once an update
 * cycle, on the main thread. Returns how many callbacks ran.
 */
func (js *JobSystem) Update() int {
	count := 0
	for {
		select {
		case r := <-js.results:
			if r.err != nil {
				if r.task.OnFailure != nil {
					r.task.OnFailure(r.err)
				}
			} else if r.task.OnComplete != nil {
				r.task.OnComplete(r.result)
			}
			count++
		default:
			return count
		}
	}
}

/**
 * @brief Submits the provided job to be queued for execution.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt metadata.JobTask) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()
	if js.closed {
		return fmt.Errorf("job submitted after shutdown: %w", core.ErrNotInitialized)
	}
	js.jobQueue <- jt
	return nil
}
