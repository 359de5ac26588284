package prefroom

// Store is a namespaced key/value settings store. Generated preference
// entities read through the typed getters, which return the given default
// when the key is absent or holds a value of another kind, and write
// through an Editor.
type Store interface {
	Bool(key string, def bool) bool
	Int(key string, def int) int
	Int64(key string, def int64) int64
	Float32(key string, def float32) float32
	String(key string, def string) string
	StringSet(key string, def []string) []string

	// Contains reports if the store holds a value for key.
	Contains(key string) bool
	// Keys returns the stored keys in sorted order.
	Keys() []string
	// Edit starts a batch of changes.
	Edit() Editor
	// Subscribe registers fn to be called with the key of every value
	// changed or removed by a committed edit.
	Subscribe(fn func(key string)) Unsubscribe
}

// Editor batches changes to a Store. Changes become visible when the batch
// is committed with Commit or Apply. A Clear in the batch is performed
// before any other change regardless of call order.
type Editor interface {
	PutBool(key string, v bool) Editor
	PutInt(key string, v int) Editor
	PutInt64(key string, v int64) Editor
	PutFloat32(key string, v float32) Editor
	PutString(key string, v string) Editor
	PutStringSet(key string, v []string) Editor
	Remove(key string) Editor
	Clear() Editor

	// Commit writes the batch and reports the persistence error, if any.
	Commit() error
	// Apply writes the batch without waiting for, or reporting, the
	// result of persisting it.
	Apply()
}

// Unsubscribe cancels a subscription made with Store.Subscribe.
type Unsubscribe func()
