package app

import "time"

// NoticeLifetime is how long a success notice stays visible.
const NoticeLifetime = 3 * time.Second

// Scheduler runs f once after d. The returned cancel reports whether it
// stopped f from running.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func() bool)
}

// TimerScheduler schedules on the runtime timer.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}
