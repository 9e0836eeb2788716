// internal/app/system/workers/maildispatch.go
package workers

import (
	"sync"
	"time"

	"github.com/dalemusser/flattrack/internal/app/system/mailer"
	"go.uber.org/zap"
)

// MailDispatch is a background worker that drains queued emails at a
// fixed stagger interval so a burst of booking emails does not hammer
// the SMTP server. The stagger is a pacing device, not a delivery
// guarantee: a failed send is logged and dropped.
type MailDispatch struct {
	mail    *mailer.Mailer
	log     *zap.Logger
	stagger time.Duration

	mu    sync.Mutex
	queue []mailer.Email

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewMailDispatch creates the dispatcher. stagger is the minimum gap
// between consecutive sends (500ms if zero).
func NewMailDispatch(mail *mailer.Mailer, logger *zap.Logger, stagger time.Duration) *MailDispatch {
	if stagger <= 0 {
		stagger = 500 * time.Millisecond
	}
	return &MailDispatch{
		mail:    mail,
		log:     logger,
		stagger: stagger,
		stopCh:  make(chan struct{}),
	}
}

// Enqueue adds emails to the outgoing queue.
func (w *MailDispatch) Enqueue(emails ...mailer.Email) {
	w.mu.Lock()
	w.queue = append(w.queue, emails...)
	n := len(w.queue)
	w.mu.Unlock()
	w.log.Debug("emails queued", zap.Int("queued", len(emails)), zap.Int("depth", n))
}

// Pending returns the current queue depth.
func (w *MailDispatch) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queue)
}

// Start begins the background dispatch loop.
func (w *MailDispatch) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("mail dispatch worker started", zap.Duration("stagger", w.stagger))
}

// Stop signals the worker to stop and waits for it to finish. Queued
// but unsent emails are discarded.
func (w *MailDispatch) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("mail dispatch worker stopped")
}

func (w *MailDispatch) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.stagger)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sendNext()
		}
	}
}

func (w *MailDispatch) sendNext() {
	w.mu.Lock()
	if len(w.queue) == 0 {
		w.mu.Unlock()
		return
	}
	next := w.queue[0]
	w.queue = w.queue[1:]
	w.mu.Unlock()

	if err := w.mail.Send(next); err != nil {
		w.log.Error("email send failed",
			zap.Strings("to", next.To),
			zap.String("subject", next.Subject),
			zap.Error(err))
		return
	}
	w.log.Info("email sent",
		zap.Strings("to", next.To),
		zap.String("subject", next.Subject))
}
