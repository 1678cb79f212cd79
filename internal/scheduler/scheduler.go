package scheduler

import (
	"context"
	"fmt"
	"instashare-backend/config"
	"instashare-backend/internal/ports"
	"log"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler : запускает проход конвейера сжатия раз в interval
type Scheduler struct {
	cron     *cron.Cron
	runner   ports.CompressionRunner
	interval time.Duration
	enabled  bool
	policy   string
	stopOnce sync.Once
	stopped  chan struct{}
}

func New(cfg *config.SchedulerConfig, runner ports.CompressionRunner) (*Scheduler, error) {
	interval, err := config.Duration(cfg.Interval, config.DefaultSchedulerPeriod)
	if err != nil {
		return nil, fmt.Errorf("[Scheduler] %w", err)
	}

	logger := cron.PrintfLogger(log.New(os.Stdout, "[Scheduler] ", log.LstdFlags))
	options := []cron.Option{cron.WithLogger(logger)}
	if wrapper := overlapWrapper(cfg.OverlapPolicy, logger); wrapper != nil {
		options = append(options, cron.WithChain(wrapper))
	}

	return &Scheduler{
		cron:     cron.New(options...),
		runner:   runner,
		interval: interval,
		enabled:  cfg.Enabled,
		policy:   cfg.OverlapPolicy,
		stopped:  make(chan struct{}),
	}, nil
}

// overlapWrapper : allow запускает проходы параллельно, от дублей защищает аренда документа
func overlapWrapper(policy string, logger cron.Logger) cron.JobWrapper {
	switch policy {
	case config.OverlapSkip:
		return cron.SkipIfStillRunning(logger)
	case config.OverlapDelay:
		return cron.DelayIfStillRunning(logger)
	default:
		return nil
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if !s.enabled {
		log.Println("[Scheduler] планировщик отключён в конфигурации")
		return nil
	}

	_, err := s.cron.AddJob(fmt.Sprintf("@every %s", s.interval), s.job(ctx))
	if err != nil {
		return fmt.Errorf("[Scheduler] не удалось зарегистрировать задачу сжатия: %w", err)
	}

	s.cron.Start()
	log.Printf("[Scheduler] сжатие документов каждые %s, политика наложения %q", s.interval, s.policy)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop : останавливает cron и ждёт завершения текущего прохода, повторный вызов безопасен
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		<-s.cron.Stop().Done()
		close(s.stopped)
		log.Println("[Scheduler] планировщик остановлен")
	})
}

func (s *Scheduler) Done() <-chan struct{} {
	return s.stopped
}

func (s *Scheduler) job(ctx context.Context) cron.Job {
	return cron.FuncJob(func() {
		report := s.runner.Run(context.WithoutCancel(ctx))
		log.Printf("[Scheduler] %s", report)
	})
}
