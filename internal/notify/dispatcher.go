package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Dispatcher 邮件异步投递队列。入队永不阻塞请求：队列满了直接丢并记日志，
// 发送失败也只记日志 —— 通知永远不影响主流程。
type Dispatcher struct {
	sender Sender
	log    *zap.Logger
	ch     chan Message
	wg     sync.WaitGroup

	closeOnce sync.Once
}

func NewDispatcher(sender Sender, log *zap.Logger, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	d := &Dispatcher{
		sender: sender,
		log:    log,
		ch:     make(chan Message, buffer),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for m := range d.ch {
		if err := d.sender.Send(m); err != nil {
			d.log.Error("email send failed",
				zap.Strings("to", m.To),
				zap.String("subject", m.Subject),
				zap.Error(err),
			)
			continue
		}
		d.log.Info("email sent", zap.Strings("to", m.To), zap.String("subject", m.Subject))
	}
}

// Enqueue 非阻塞入队
func (d *Dispatcher) Enqueue(m Message) {
	if d == nil {
		return
	}
	select {
	case d.ch <- m:
	default:
		d.log.Warn("email queue full, dropping message",
			zap.Strings("to", m.To),
			zap.String("subject", m.Subject),
		)
	}
}

// Close 停止接收并把队列里剩余的发完
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.ch)
	})
	d.wg.Wait()
}
