package hooks

import "context"

// Authorizer lets the embedding application approve or deny mutating
// operations before they run. Every method defaults to allow.
type Authorizer interface {
	ShouldUploadFile(ctx context.Context, path string, tmpPath string) bool
	ShouldMoveItem(ctx context.Context, fromPath string, toPath string) bool
	ShouldCopyItem(ctx context.Context, fromPath string, toPath string) bool
	ShouldDeleteItem(ctx context.Context, path string) bool
	ShouldCreateDirectory(ctx context.Context, path string) bool
}

// Notifier tells the embedding application that an operation
// completed. Callbacks fire only after a successful mutation and never
// for a request that failed authorization.
type Notifier interface {
	DidDownloadFile(path string)
	DidUploadFile(path string)
	DidMoveItem(fromPath string, toPath string)
	DidCopyItem(fromPath string, toPath string)
	DidDeleteItem(path string)
	DidCreateDirectory(path string)
}

// AllowAll is the default Authorizer.
type AllowAll struct{}

func (AllowAll) ShouldUploadFile(ctx context.Context, path string, tmpPath string) bool { return true }
func (AllowAll) ShouldMoveItem(ctx context.Context, fromPath string, toPath string) bool {
	return true
}
func (AllowAll) ShouldCopyItem(ctx context.Context, fromPath string, toPath string) bool {
	return true
}
func (AllowAll) ShouldDeleteItem(ctx context.Context, path string) bool      { return true }
func (AllowAll) ShouldCreateDirectory(ctx context.Context, path string) bool { return true }

// NopNotifier is the default Notifier.
type NopNotifier struct{}

func (NopNotifier) DidDownloadFile(path string)                {}
func (NopNotifier) DidUploadFile(path string)                  {}
func (NopNotifier) DidMoveItem(fromPath string, toPath string) {}
func (NopNotifier) DidCopyItem(fromPath string, toPath string) {}
func (NopNotifier) DidDeleteItem(path string)                  {}
func (NopNotifier) DidCreateDirectory(path string)             {}
