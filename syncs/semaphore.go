package syncs

// Semaphore is a counting semaphore. A Semaphore of size one is a sync.Locker.
type Semaphore chan struct{}

func NewSemaphore(n int) Semaphore {
	return make(chan struct{}, n)
}

func (s Semaphore) Acquire() {
	s <- struct{}{}
}

func (s Semaphore) TryAcquire() bool {
	select {
	case s <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s Semaphore) Release() {
	<-s
}

func (s Semaphore) Lock() {
	s.Acquire()
}

func (s Semaphore) Unlock() {
	s.Release()
}
