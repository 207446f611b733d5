package console

import "sync"

// Sessions and lines follow a rent/return discipline: rented for the
// duration of one ReadLine call, fully reset on return. Rows are value
// slices owned by their line and are reused in place, so repeated reads do
// not churn allocations.
var (
	sessionPool = sync.Pool{New: func() any { return &session{} }}
	linePool    = sync.Pool{New: func() any { return &line{} }}
)

func rentSession() *session {
	return sessionPool.Get().(*session)
}

func returnSession(s *session) {
	s.reset()
	sessionPool.Put(s)
}

func rentLine() *line {
	return linePool.Get().(*line)
}

func returnLine(l *line) {
	l.reset()
	linePool.Put(l)
}
