package cache

// Cache is the read-through cache the store adapters put in front of bolt.
type Cache interface {
	Get(key any) (any, bool)
	Add(key, value any)
	Keys() []any
	Delete(key any)
}
