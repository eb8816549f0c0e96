package platform

// SetupSimulator attaches a fresh Simulator as the native host, installs a
// manual TaskQueue as the dispatch function, and registers ResetForTest as a
// teardown. The cleanup function should be testing.T.Cleanup or equivalent:
//
//	sim, queue := platform.SetupSimulator(t.Cleanup)
//
// Deferred delegate work (begin/end editing) stays queued until the test
// calls queue.Flush().
func SetupSimulator(cleanup func(func())) (*Simulator, *TaskQueue) {
	sim := NewSimulator()
	if _, err := AttachHost(sim); err != nil {
		panic("platform: simulator handshake failed: " + err.Error())
	}

	queue := &TaskQueue{}
	RegisterDispatch(queue.Enqueue)

	cleanup(ResetForTest)
	return sim, queue
}

// ResetForTest resets all global platform state for test isolation: native
// host, handshake info, dispatch function, focus tracking, and live control
// handles. This should only be called from tests.
func ResetForTest() {
	SetNativeHost(nil)

	hostInfoMu.Lock()
	hostInfo = nil
	hostInfoMu.Unlock()

	dispatchMu.Lock()
	dispatchFunc = nil
	dispatchMu.Unlock()

	focusMu.Lock()
	focusedControlID = 0
	hasFocusedControl = false
	focusMu.Unlock()

	if registryInstance != nil {
		registryInstance.mu.Lock()
		registryInstance.controls = make(map[int64]*TextControl)
		registryInstance.mu.Unlock()
		registryInstance.nextID.Store(0)
	}
}
