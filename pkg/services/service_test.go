package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeService struct {
	name    string
	initErr error
	rec     *recorder
}

func (f *fakeService) Init() error {
	f.rec.add("init " + f.name)
	return f.initErr
}

func (f *fakeService) Run(ctx context.Context) {}

func (f *fakeService) Stop() {
	f.rec.add("stop " + f.name)
}

func TestManagerStopsInReverseOrder(t *testing.T) {
	rec := &recorder{}
	m := NewManager(nopLogger{})
	m.AddService(&fakeService{name: "a", rec: rec}, &fakeService{name: "b", rec: rec})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Equal(t, nil, m.Run(ctx))
	assert.Equal(t, []string{"init a", "init b", "stop b", "stop a"}, rec.list())
}

func TestManagerStopsStartedServicesOnInitError(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")
	m := NewManager(nopLogger{})
	m.AddService(
		&fakeService{name: "a", rec: rec},
		&fakeService{name: "b", rec: rec, initErr: boom},
		&fakeService{name: "c", rec: rec},
	)

	assert.Equal(t, boom, m.Run(context.Background()))
	assert.Equal(t, []string{"init a", "init b", "stop a"}, rec.list())
}
