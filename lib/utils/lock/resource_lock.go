package lock

import (
	"context"
	"sync"
	"sync/atomic"
)

// lock для доступа к локальной модели ИИ: одновременно выполняется только один запрос

var Resource = newResourceLock()

func InitResourceLock(ctx context.Context) {
	Resource = newResourceLock()

	go func() {
		<-ctx.Done()
		Resource.Stop()
	}()
}

type ResourceLock struct {
	slot      chan struct{}
	mu        sync.Mutex
	holder    string
	waitCount int32
	stopCh    chan struct{}
	stopOnce  sync.Once
}

func newResourceLock() *ResourceLock {
	return &ResourceLock{
		slot:   make(chan struct{}, 1),
		stopCh: make(chan struct{}),
	}
}

// Acquire ждёт освобождения ресурса.
// Возвращает false если контекст завершился или lock остановлен.
func (c *ResourceLock) Acquire(ctx context.Context, functionName string) bool {
	atomic.AddInt32(&c.waitCount, 1)
	defer atomic.AddInt32(&c.waitCount, -1)

	select {
	case <-c.stopCh:
		return false
	default:
	}
	select {
	case <-ctx.Done():
		return false
	case <-c.stopCh:
		return false
	case c.slot <- struct{}{}:
	}
	c.mu.Lock()
	c.holder = functionName
	c.mu.Unlock()
	return true
}

// Release освобождает ресурс, вызов не владельцем игнорируется
func (c *ResourceLock) Release(functionName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.holder != functionName {
		return
	}
	c.holder = ""
	<-c.slot
}

// Stop отпускает всех ожидающих, новые Acquire сразу возвращают false
func (c *ResourceLock) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}

func (c *ResourceLock) Holder() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.holder
}

// WaitCount количество ожидающих горутин
func (c *ResourceLock) WaitCount() int {
	return int(atomic.LoadInt32(&c.waitCount))
}
