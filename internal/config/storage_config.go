package config

type StorageConfig interface {
	GetStorageFileName() string
	GetCredentialChannel() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetStorageFileName() string {
	return "storefront.json"
}

// GetCredentialChannel returns the broadcast channel name used to signal
// credential changes to other running clients.
func (Storage) GetCredentialChannel() string {
	return "storefront:credential"
}
