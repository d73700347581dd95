package upload_service

import (
	"log"
	"time"

	"file-vault/conf"
)

// CleanupProcessor periodically sweeps expired upload sessions. Abandoned
// sessions have no active caller, so the sweep is their only reclamation path.
type CleanupProcessor struct {
	uploadService *UploadService
	stopChan      chan struct{}
	interval      time.Duration
	batchSize     int
}

// NewCleanupProcessor create cleanup processor instance
func NewCleanupProcessor(uploadService *UploadService) *CleanupProcessor {
	interval := 10 * time.Minute
	batchSize := 100
	if conf.Cfg != nil {
		if conf.Cfg.Upload.SweepIntervalMins > 0 {
			interval = time.Duration(conf.Cfg.Upload.SweepIntervalMins) * time.Minute
		}
		if conf.Cfg.Upload.SweepBatchSize > 0 {
			batchSize = conf.Cfg.Upload.SweepBatchSize
		}
	}
	return &CleanupProcessor{
		uploadService: uploadService,
		stopChan:      make(chan struct{}),
		interval:      interval,
		batchSize:     batchSize,
	}
}

// Start run the sweep loop in a goroutine
func (cp *CleanupProcessor) Start() {
	log.Println("Upload cleanup processor started")
	go cp.run()
}

// Stop stop the sweep loop
func (cp *CleanupProcessor) Stop() {
	log.Println("Stopping upload cleanup processor...")
	close(cp.stopChan)
}

func (cp *CleanupProcessor) run() {
	ticker := time.NewTicker(cp.interval)
	defer ticker.Stop()

	// Run once immediately at startup
	cp.sweep()

	for {
		select {
		case <-cp.stopChan:
			log.Println("Upload cleanup processor stopped")
			return
		case <-ticker.C:
			cp.sweep()
		}
	}
}

func (cp *CleanupProcessor) sweep() {
	cleaned, err := cp.uploadService.SweepExpired(cp.batchSize)
	if err != nil {
		log.Printf("Failed to sweep expired upload sessions: %v", err)
		return
	}
	if cleaned > 0 {
		log.Printf("Cleaned up %d expired upload sessions", cleaned)
	}
}
