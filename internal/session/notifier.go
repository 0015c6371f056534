package session

// Notifier receives the transient success and error messages an
// operation produces. Implementations must not block.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier discards all messages
type NopNotifier struct{}

// Success implements Notifier
func (NopNotifier) Success(string) {}

// Error implements Notifier
func (NopNotifier) Error(string) {}

// NotifierFuncs adapts two functions to a Notifier
type NotifierFuncs struct {
	OnSuccess func(string)
	OnError   func(string)
}

// Success implements Notifier
func (n NotifierFuncs) Success(message string) {
	if n.OnSuccess != nil {
		n.OnSuccess(message)
	}
}

// Error implements Notifier
func (n NotifierFuncs) Error(message string) {
	if n.OnError != nil {
		n.OnError(message)
	}
}
