package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"recruitkit/cv-pipeline/internal/repositories"
)

type jobKind string

const (
	jobExtraction jobKind = "extraction"
	jobEvaluation jobKind = "evaluation"
)

type workerJob struct {
	kind jobKind
	id   uuid.UUID
}

// Worker drains queued extractions and evaluations on a fixed pool of
// goroutines. A poller also picks up jobs left in queued state, so work
// enqueued before a restart is not lost.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueExtraction(profileID uuid.UUID)
	EnqueueEvaluation(evalID uuid.UUID)
}

type worker struct {
	profileRepo  repositories.ProfileRepository
	evalRepo     repositories.EvaluationRepository
	extraction   ExtractionService
	fitEvaluator FitEvaluatorService
	jobQueue     chan workerJob
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func NewWorker(
	profileRepo repositories.ProfileRepository,
	evalRepo repositories.EvaluationRepository,
	extraction ExtractionService,
	fitEvaluator FitEvaluatorService,
	concurrency int,
	pollInterval time.Duration,
) Worker {
	return &worker{
		profileRepo:  profileRepo,
		evalRepo:     evalRepo,
		extraction:   extraction,
		fitEvaluator: fitEvaluator,
		jobQueue:     make(chan workerJob, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
		inFlight:     make(map[uuid.UUID]struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueExtraction implements Worker.
func (w *worker) EnqueueExtraction(profileID uuid.UUID) {
	w.enqueue(workerJob{kind: jobExtraction, id: profileID})
}

// EnqueueEvaluation implements Worker.
func (w *worker) EnqueueEvaluation(evalID uuid.UUID) {
	w.enqueue(workerJob{kind: jobEvaluation, id: evalID})
}

func (w *worker) enqueue(job workerJob) {
	w.mu.Lock()
	if _, dup := w.inFlight[job.id]; dup {
		w.mu.Unlock()
		return
	}
	w.inFlight[job.id] = struct{}{}
	w.mu.Unlock()

	select {
	case w.jobQueue <- job:
		log.Printf("📥 %s job %s enqueued\n", job.kind, job.id)
	case <-w.stopChan:
		w.release(job.id)
		log.Printf("⚠️  Worker stopped, cannot enqueue %s job %s\n", job.kind, job.id)
	default:
		// Queue is full. The row is still queued in the database, so the
		// poller will pick it up again once there is room.
		w.release(job.id)
		log.Printf("⚠️  Job queue full, deferring %s job %s to poller\n", job.kind, job.id)
	}
}

func (w *worker) release(id uuid.UUID) {
	w.mu.Lock()
	delete(w.inFlight, id)
	w.mu.Unlock()
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case job := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing %s job %s\n", workerID, job.kind, job.id)

			var err error
			switch job.kind {
			case jobExtraction:
				err = w.extraction.ExtractProfile(ctx, job.id)
			case jobEvaluation:
				err = w.fitEvaluator.EvaluateFit(ctx, job.id)
			}

			w.release(job.id)

			if err != nil {
				log.Printf("❌ Worker #%d failed %s job %s: %v\n", workerID, job.kind, job.id, err)
			} else {
				log.Printf("✅ Worker #%d completed %s job %s\n", workerID, job.kind, job.id)
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	log.Println("🔄 Starting pending jobs poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending jobs poller stopped")
			return
		case <-ticker.C:
			pendingProfiles, err := w.profileRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending extractions: %v\n", err)
			} else {
				if len(pendingProfiles) > 0 {
					log.Printf("📋 Found %d pending extractions\n", len(pendingProfiles))
				}
				for _, profile := range pendingProfiles {
					w.EnqueueExtraction(profile.ID)
				}
			}

			pendingEvals, err := w.evalRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending evaluations: %v\n", err)
				continue
			}
			if len(pendingEvals) > 0 {
				log.Printf("📋 Found %d pending evaluations\n", len(pendingEvals))
			}
			for _, eval := range pendingEvals {
				w.EnqueueEvaluation(eval.ID)
			}
		}
	}
}
