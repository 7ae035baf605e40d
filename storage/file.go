package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

var _ KV = (*FileKV)(nil)

// FileKV persists keys as a JSON object in a single file. Every read goes to
// disk so that changes written by another process are visible; writes go
// through a temp file and rename so a concurrent reader never sees a partial
// file.
type FileKV struct {
	path string
	lock sync.Mutex
}

func NewFileKV(folder, name string) (*FileKV, error) {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, errors.Wrap(err, "[NewFileKV] MkdirAll")
	}
	return &FileKV{path: filepath.Join(folder, name)}, nil
}

func (f *FileKV) Get(key string) (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	values, err := f.read()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", KeyNotFoundErr
	}
	return value, nil
}

func (f *FileKV) Set(key, value string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *FileKV) Delete(key string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.write(values)
}

func (f *FileKV) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrap(err, "[FileKV.read] ReadFile")
	}
	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "[FileKV.read] Unmarshal")
	}
	return values, nil
}

func (f *FileKV) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileKV.write] Marshal")
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileKV.write] WriteFile")
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return errors.Wrap(err, "[FileKV.write] Rename")
	}
	return nil
}
