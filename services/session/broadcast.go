package session

// broadcast is the single mutation epilogue: queue a persistence write of
// the whole store, then push the current record to every connection in the
// session's room. Callers hold the engine mutex and must have checked the
// code still resolves.
func (e *Engine) broadcast(code string) {
	sess, found := e.store.Get(code)
	if !found {
		return
	}
	e.store.SaveAsync()
	e.notifier.SessionUpdate(code, sess)
}
