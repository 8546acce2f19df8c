package ports

type FileEvent struct {
	Path      string
	Operation string
}

type FileWatcher interface {
	Events() <-chan FileEvent
	Close() error
}
