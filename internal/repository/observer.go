package repository

import "time"

// QueryObserver receives database timing. *service.MetricsService satisfies it.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

type instrumented struct {
	observer QueryObserver
}

// SetObserver attaches a timing observer. Passing nil disables timing.
func (i *instrumented) SetObserver(o QueryObserver) {
	i.observer = o
}

func (i *instrumented) observe(label string, start time.Time) {
	if i.observer == nil {
		return
	}
	i.observer.ObserveDBQuery(label, time.Since(start))
}
