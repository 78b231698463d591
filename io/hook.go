package io

type HookEvent int

const (
	HookEventInsert HookEvent = iota
	HookEventDelete
)

type HookCallbackFn func(txn *MemoryStoreTxn, event HookEvent, obj interface{}) error

type ObjectHook struct {
	Events     []HookEvent // insert || delete
	ObjType    string      // model.Type
	CallbackFn HookCallbackFn
}

func (h ObjectHook) handles(event HookEvent) bool {
	for _, e := range h.Events {
		if e == event {
			return true
		}
	}
	return false
}

func (ms *MemoryStore) RegisterHook(hookConfig ObjectHook) {
	if len(hookConfig.Events) == 0 {
		return
	}

	ms.hookMutex.Lock()
	defer ms.hookMutex.Unlock()

	ms.hooks[hookConfig.ObjType] = append(ms.hooks[hookConfig.ObjType], hookConfig)
}
