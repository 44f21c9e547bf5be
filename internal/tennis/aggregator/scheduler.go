package aggregator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler dispara o Refresh periodicamente; execuções sobrepostas são puladas
type Scheduler struct {
	agg      *Aggregator
	cron     *cron.Cron
	interval time.Duration
	log      *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup // refresh inicial, fora do controle do cron
}

func NewScheduler(agg *Aggregator, interval time.Duration, log *zap.Logger) *Scheduler {
	cl := cronLogger{log: log}
	return &Scheduler{
		agg:      agg,
		interval: interval,
		log:      log,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// Start agenda o job "@every <interval>" e dispara um refresh imediato em background
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid refresh interval %s", s.interval)
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	job := cron.FuncJob(func() {
		s.log.Info("updating tennis data")
		s.agg.Refresh(s.ctx)
	})
	id := s.cron.Schedule(cron.Every(s.interval), job)

	s.cron.Start()
	// o refresh inicial passa pelo mesmo chain, então também respeita o SkipIfStillRunning
	initial := s.cron.Entry(id).WrappedJob
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		initial.Run()
	}()

	s.log.Info("refresh scheduler started", zap.Duration("interval", s.interval))
	return nil
}

// Stop cancela refreshes em andamento e espera o job atual terminar
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.log.Info("refresh scheduler stopped")
}

// cronLogger adapta o zap para a interface cron.Logger
type cronLogger struct{ log *zap.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, zap.Any("details", keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, zap.Error(err), zap.Any("details", keysAndValues))
}
