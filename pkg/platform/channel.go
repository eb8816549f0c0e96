package platform

import (
	"sync"

	quillerrors "github.com/go-quill/quill/pkg/errors"
)

// MethodHandler handles incoming method calls on a channel.
type MethodHandler func(method string, args any) (any, error)

// MethodChannel provides bidirectional method-call communication with native code.
type MethodChannel struct {
	name    string
	codec   MessageCodec
	handler MethodHandler
}

// NewMethodChannel creates a new method channel with the given name.
func NewMethodChannel(name string) *MethodChannel {
	ch := &MethodChannel{
		name:  name,
		codec: DefaultCodec,
	}
	channels.register(name, ch)
	return ch
}

// Name returns the channel name.
func (c *MethodChannel) Name() string {
	return c.name
}

// SetHandler sets the handler for incoming method calls from native code.
func (c *MethodChannel) SetHandler(handler MethodHandler) {
	c.handler = handler
}

// Invoke calls a method on the native side and returns the result.
// This blocks until the native side responds or an error occurs.
func (c *MethodChannel) Invoke(method string, args any) (any, error) {
	return invokeHost(c.name, method, args)
}

// handleCall processes an incoming method call from native code.
func (c *MethodChannel) handleCall(method string, args any) (any, error) {
	if c.handler == nil {
		return nil, ErrMethodNotFound
	}
	return c.handler(method, args)
}

// channelRegistry tracks all registered method channels.
type channelRegistry struct {
	byName map[string]*MethodChannel
	mu     sync.RWMutex
}

var channels = &channelRegistry{byName: make(map[string]*MethodChannel)}

func (r *channelRegistry) register(name string, ch *MethodChannel) {
	r.mu.Lock()
	r.byName[name] = ch
	r.mu.Unlock()
}

func (r *channelRegistry) get(name string) *MethodChannel {
	r.mu.RLock()
	ch := r.byName[name]
	r.mu.RUnlock()
	return ch
}

// NativeHost is the interface to the native toolkit process.
// It is attached once during engine startup (or by a test simulator).
type NativeHost interface {
	// InvokeMethod calls a method on the native side.
	InvokeMethod(channel, method string, args []byte) ([]byte, error)
}

var (
	hostMu     sync.RWMutex
	nativeHost NativeHost
)

// SetNativeHost attaches the native host implementation.
func SetNativeHost(host NativeHost) {
	hostMu.Lock()
	nativeHost = host
	hostMu.Unlock()
}

func currentHost() NativeHost {
	hostMu.RLock()
	defer hostMu.RUnlock()
	return nativeHost
}

// invokeHost calls a method on the native side.
func invokeHost(channel, method string, args any) (any, error) {
	host := currentHost()
	if host == nil {
		return nil, ErrHostUnavailable
	}

	argsData, err := DefaultCodec.Encode(args)
	if err != nil {
		quillerrors.Report(&quillerrors.Error{
			Op:      "platform.invokeHost",
			Kind:    quillerrors.KindCodec,
			Channel: channel,
			Err:     err,
		})
		return nil, err
	}

	resultData, err := host.InvokeMethod(channel, method, argsData)
	if err != nil {
		quillerrors.Report(&quillerrors.Error{
			Op:      "platform.invokeHost",
			Kind:    quillerrors.KindChannel,
			Channel: channel,
			Err:     err,
		})
		return nil, err
	}

	return DefaultCodec.Decode(resultData)
}

// HandleMethodCall is called by the host when native invokes a Go method.
func HandleMethodCall(channel, method string, argsData []byte) ([]byte, error) {
	ch := channels.get(channel)
	if ch == nil {
		return nil, ErrChannelNotFound
	}

	args, err := DefaultCodec.Decode(argsData)
	if err != nil {
		quillerrors.Report(&quillerrors.Error{
			Op:      "platform.HandleMethodCall",
			Kind:    quillerrors.KindCodec,
			Channel: channel,
			Err:     err,
		})
		return nil, err
	}

	result, err := ch.handleCall(method, args)
	if err != nil {
		return nil, err
	}

	return DefaultCodec.Encode(result)
}
