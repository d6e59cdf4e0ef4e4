package hooks

import "sync"

// SerialNotifier marshals notifications onto a single goroutine so the
// embedding application never observes two callbacks concurrently,
// even though handlers run in parallel.
type SerialNotifier struct {
	inner Notifier
	ch    chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

func NewSerialNotifier(inner Notifier) *SerialNotifier {
	if inner == nil {
		inner = NopNotifier{}
	}
	s := &SerialNotifier{
		inner: inner,
		ch:    make(chan func(), 64),
	}
	s.wg.Add(1)
	go s.loop()
	return s
}

func (s *SerialNotifier) loop() {
	defer s.wg.Done()
	for fn := range s.ch {
		fn()
	}
}

// Close drains pending notifications and stops the dispatch goroutine.
func (s *SerialNotifier) Close() {
	s.once.Do(func() { close(s.ch) })
	s.wg.Wait()
}

func (s *SerialNotifier) DidDownloadFile(path string) {
	s.ch <- func() { s.inner.DidDownloadFile(path) }
}

func (s *SerialNotifier) DidUploadFile(path string) {
	s.ch <- func() { s.inner.DidUploadFile(path) }
}

func (s *SerialNotifier) DidMoveItem(fromPath string, toPath string) {
	s.ch <- func() { s.inner.DidMoveItem(fromPath, toPath) }
}

func (s *SerialNotifier) DidCopyItem(fromPath string, toPath string) {
	s.ch <- func() { s.inner.DidCopyItem(fromPath, toPath) }
}

func (s *SerialNotifier) DidDeleteItem(path string) {
	s.ch <- func() { s.inner.DidDeleteItem(path) }
}

func (s *SerialNotifier) DidCreateDirectory(path string) {
	s.ch <- func() { s.inner.DidCreateDirectory(path) }
}
