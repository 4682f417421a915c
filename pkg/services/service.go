package service

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type (
	Service interface {
		Init() error
		Run(ctx context.Context)
		Stop()
	}
	Services interface {
		AddService(service ...Service)
		Run(ctx context.Context) error
	}
	Manager struct {
		log      Logger
		services []Service
		signals  []os.Signal
	}
)

func NewManager(log Logger) *Manager {
	return &Manager{
		log:     log,
		signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
}

func (s *Manager) AddService(service ...Service) {
	s.services = append(s.services, service...)
}

// Run initializes every service in order, starts them and blocks until a
// shutdown signal arrives or ctx is done. Services are stopped in reverse.
func (s *Manager) Run(ctx context.Context) error {
	s.log.Info("going to start %d services", len(s.services))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for count, service := range s.services {
		if err := service.Init(); err != nil {
			s.stop(s.services[:count])
			return err
		}
	}
	for _, service := range s.services {
		go service.Run(ctx)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, s.signals...)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		s.log.Info("received %s", sig)
	case <-ctx.Done():
	}

	cancel()
	s.stop(s.services)
	return nil
}

func (s *Manager) stop(services []Service) {
	s.log.Info("going to stop")
	for i := len(services) - 1; i >= 0; i-- {
		services[i].Stop()
	}
}
