package store

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"sync"

	"github.com/arcenciel/creche-api/shared"

	"github.com/pkg/errors"
)

var (
	ErrRecordNotFound = errors.New("record not found")
)

// Record is one schemaless JSON object. Fields the API does not know about
// pass through the store untouched.
type Record map[string]interface{}

func (r Record) Id() string {
	id, _ := r["id"].(string)
	return id
}

func (r Record) Clone() Record {
	clone := make(Record, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}

// FileStore owns the ordered record list of exactly one resource, mirrored to
// a single pretty-printed JSON array file. The in-memory list is the source of
// truth during process lifetime; the file is rewritten wholesale after every
// mutation. The mutex is the per-resource serialization point: handlers run on
// concurrent goroutines and the original last-writer-wins file race is not a
// behavior worth keeping.
type FileStore struct {
	Path   string
	Logger *shared.Logger

	mutex sync.Mutex
	items []Record
}

func NewFileStore(path string, logger *shared.Logger) *FileStore {
	return &FileStore{
		Path:   path,
		Logger: logger,
	}
}

// Init loads the backing file. A missing file means the resource starts empty
// and the file is created right away; any other failure is returned as-is so
// the store refuses to operate on top of a corrupt or unreadable file.
func (s *FileStore) Init(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	b, err := ioutil.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			s.items = []Record{}
			return s.persist()
		}
		return errors.Wrap(err, "failed to load "+s.Path)
	}

	if err := json.Unmarshal(b, &s.items); err != nil {
		return errors.Wrap(err, "failed to parse "+s.Path)
	}
	if s.items == nil {
		s.items = []Record{}
	}

	s.Logger.Debug(ctx, "store loaded", "path", s.Path, "records", len(s.items))
	return nil
}

// GetAll returns the current list in insertion order.
func (s *FileStore) GetAll() []Record {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.items
}

func (s *FileStore) FindById(id string) (Record, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, item := range s.items {
		if item.Id() == id {
			return item, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (s *FileStore) Add(ctx context.Context, item Record) (Record, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.items = append(s.items, item)
	if err := s.persist(); err != nil {
		return nil, err
	}
	return item, nil
}

// Update shallow-merges the partial payload over the stored record. The
// identifier always wins over whatever the payload carries, an update can
// never rename a record. List order is untouched.
func (s *FileStore) Update(ctx context.Context, id string, partial Record) (Record, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, item := range s.items {
		if item.Id() != id {
			continue
		}
		merged := item.Clone()
		for k, v := range partial {
			merged[k] = v
		}
		merged["id"] = id
		s.items[i] = merged
		if err := s.persist(); err != nil {
			return nil, err
		}
		return merged, nil
	}
	return nil, ErrRecordNotFound
}

func (s *FileStore) Remove(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, item := range s.items {
		if item.Id() != id {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return s.persist()
	}
	return ErrRecordNotFound
}

// persist rewrites the whole file synchronously. A failure here propagates to
// the caller with the in-memory mutation already applied; memory and disk stay
// divergent until the next successful mutation.
func (s *FileStore) persist() error {
	b, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize "+s.Path)
	}
	if err := ioutil.WriteFile(s.Path, b, 0644); err != nil {
		return errors.Wrap(err, "failed to write "+s.Path)
	}
	return nil
}
