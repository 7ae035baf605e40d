package storage

// KV is a durable string key-value store. It is the persistence mechanism
// shared by the credential and theme stores; writes are last-write-wins and
// may be observed by other processes sharing the same backing file.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
