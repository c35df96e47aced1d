package scheduler

import (
	"context"
	"time"

	"kelasku_backend/internals/helpers/logger"
)

// TopUpper: bagian planner yang dipakai scheduler
type TopUpper interface {
	TopUpAll(ctx context.Context) (int, error)
}

// RunTopUpOnce: satu putaran top-up horizon semua kelas weekly. Error per kelas sudah digabung oleh TopUpAll.
func RunTopUpOnce(ctx context.Context, svc TopUpper, log *logger.Logger) int {
	log.Info("[HORIZON] Menjalankan top-up horizon sesi...")
	start := time.Now()

	created, err := svc.TopUpAll(ctx)
	if err != nil {
		log.Error("[HORIZON ERROR] Sebagian kelas gagal di-top-up", "error", err, "sessions_created", created)
		return created
	}
	if created == 0 {
		log.Info("[HORIZON] Tidak ada sesi baru yang perlu dibuat", "duration", time.Since(start).String())
	} else {
		log.Info("[HORIZON] Sesi baru dibuat", "sessions_created", created, "duration", time.Since(start).String())
	}
	return created
}

// StartHorizonTopUpScheduler: jalan sekali saat start lalu tiap interval, berhenti saat ctx selesai.
// interval <= 0 mematikan scheduler.
func StartHorizonTopUpScheduler(ctx context.Context, svc TopUpper, interval time.Duration, log *logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		log.Warn("[HORIZON] Scheduler dimatikan (interval <= 0)")
		close(done)
		return done
	}

	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()

		RunTopUpOnce(ctx, svc, log)
		for {
			select {
			case <-ctx.Done():
				log.Info("[HORIZON] Scheduler berhenti")
				return
			case <-t.C:
				RunTopUpOnce(ctx, svc, log)
			}
		}
	}()
	return done
}
