// file: internals/features/scheduling/listener/class_listener.go
package listener

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"kelasku_backend/internals/features/scheduling/planner/service"
	"kelasku_backend/internals/helpers/logger"
)

// Planner: bagian service yang dipanggil saat kelas baru dibuat
type Planner interface {
	PlanClass(ctx context.Context, classID uuid.UUID, hint service.Hint) (service.Result, error)
}

type Config struct {
	DSN           string
	Channel       string
	MinReconnect  time.Duration
	MaxReconnect  time.Duration
	PingInterval  time.Duration
	HandleTimeout time.Duration
}

func (c *Config) withDefaults() {
	if c.Channel == "" {
		c.Channel = "class_created"
	}
	if c.MinReconnect <= 0 {
		c.MinReconnect = 10 * time.Second
	}
	if c.MaxReconnect <= 0 {
		c.MaxReconnect = time.Minute
	}
	if c.PingInterval <= 0 {
		c.PingInterval = 90 * time.Second
	}
	if c.HandleTimeout <= 0 {
		c.HandleTimeout = 30 * time.Second
	}
}

type ClassListener struct {
	cfg     Config
	planner Planner
	log     *logger.Logger
}

func New(cfg Config, planner Planner, log *logger.Logger) *ClassListener {
	cfg.withDefaults()
	if log == nil {
		log = logger.Nop()
	}
	return &ClassListener{cfg: cfg, planner: planner, log: log.With("component", "class_listener")}
}

// ParsePayload: payload berupa uuid polos (dari trigger) atau JSON {"class_id": "..."}.
func ParsePayload(extra string) (uuid.UUID, error) {
	s := strings.TrimSpace(extra)
	if s == "" {
		return uuid.Nil, errors.New("empty payload")
	}
	if strings.HasPrefix(s, "{") {
		var body struct {
			ClassID string `json:"class_id"`
		}
		if err := sonic.UnmarshalString(s, &body); err != nil {
			return uuid.Nil, fmt.Errorf("decode payload: %w", err)
		}
		s = strings.TrimSpace(body.ClassID)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid class id %q: %w", s, err)
	}
	return id, nil
}

// Handle: satu notifikasi → PlanClass tanpa hint. Skip dan error hanya dicatat.
func (l *ClassListener) Handle(ctx context.Context, n *pq.Notification) {
	if n == nil {
		// koneksi tersambung ulang; notifikasi selama putus hilang
		l.log.Warn("[LISTEN] Koneksi tersambung ulang, event selama putus tidak diterima")
		return
	}
	classID, err := ParsePayload(n.Extra)
	if err != nil {
		l.log.Warn("[LISTEN] Payload tidak valid", "channel", n.Channel, "error", err)
		return
	}

	hctx, cancel := context.WithTimeout(ctx, l.cfg.HandleTimeout)
	defer cancel()

	res, err := l.planner.PlanClass(hctx, classID, service.Hint{})
	if err != nil {
		l.log.Error("[LISTEN ERROR] Gagal menjadwalkan kelas", "class_id", classID.String(), "error", err)
		return
	}
	switch r := res.(type) {
	case service.Planned:
		l.log.Info("[LISTEN] Kelas dijadwalkan", "class_id", classID.String(), "sessions_created", r.SessionsCreated)
	case service.Skipped:
		l.log.Info("[LISTEN] Kelas dilewati", "class_id", classID.String(), "reason", r.Reason)
	}
}

// Run: blocking sampai ctx selesai.
func (l *ClassListener) Run(ctx context.Context) error {
	events := func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnected:
			l.log.Info("[LISTEN] Terhubung", "channel", l.cfg.Channel)
		case pq.ListenerEventDisconnected:
			l.log.Warn("[LISTEN] Terputus", "error", err)
		case pq.ListenerEventConnectionAttemptFailed:
			l.log.Warn("[LISTEN] Gagal menyambung", "error", err)
		}
	}

	pl := pq.NewListener(l.cfg.DSN, l.cfg.MinReconnect, l.cfg.MaxReconnect, events)
	defer pl.Close()

	if err := pl.Listen(l.cfg.Channel); err != nil {
		return fmt.Errorf("listen %s: %w", l.cfg.Channel, err)
	}

	ping := time.NewTicker(l.cfg.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-pl.Notify:
			l.Handle(ctx, n)
		case <-ping.C:
			if err := pl.Ping(); err != nil {
				l.log.Warn("[LISTEN] Ping gagal", "error", err)
			}
		}
	}
}
