package mystore

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps all values of one kind as a single JSON document on local disk.
// Every Put rewrites the document atomically (write temp file, then rename).
// A document that cannot be parsed is moved aside to <path>.corrupt and the store starts empty.
type FileStore[T any] struct {
	sync.Mutex
	path  string
	items map[string]T
}

func NewFileStore[T any](c context.Context, path string) (*FileStore[T], func(), error) {
	s := &FileStore[T]{
		path:  path,
		items: map[string]T{},
	}
	err := s.load()
	if err != nil {
		return nil, func() {}, err
	}
	return s, func() {}, nil
}

func (s *FileStore[T]) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// first use
			return nil
		}
		return fmt.Errorf("error reading store file %s: %s", s.path, err)
	}
	if len(data) == 0 {
		return nil
	}
	err = json.Unmarshal(data, &s.items)
	if err != nil {
		s.items = map[string]T{}
		return s.moveAside(err)
	}
	return nil
}

func (s *FileStore[T]) moveAside(parseErr error) error {
	corrupt := s.path + ".corrupt"
	err := os.Rename(s.path, corrupt)
	if err != nil {
		return fmt.Errorf("error moving unparsable store file %s aside: %s", s.path, err)
	}
	log.Printf("Store file %s could not be parsed (%s), moved to %s", s.path, parseErr, corrupt)
	return nil
}

func (s *FileStore[T]) save() error {
	err := os.MkdirAll(filepath.Dir(s.path), 0o755)
	if err != nil {
		return fmt.Errorf("error creating directory for %s: %s", s.path, err)
	}

	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("error serializing store: %s", err)
	}

	tmp := s.path + ".tmp"
	err = os.WriteFile(tmp, data, 0o644)
	if err != nil {
		return fmt.Errorf("error writing store file %s: %s", tmp, err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore[T]) inTransaction(c context.Context) bool {
	return c.Value(ctxTransactionKey{}) == s
}

func (s *FileStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	s.Lock()
	defer s.Unlock()

	before := make(map[string]T, len(s.items))
	for k, v := range s.items {
		before[k] = v
	}

	err := f(context.WithValue(c, ctxTransactionKey{}, s))
	if err != nil {
		// Rollback
		s.items = before
		return err
	}

	// Commit
	return s.save()
}

func (s *FileStore[T]) Put(c context.Context, uid string, value T) error {
	if s.inTransaction(c) {
		s.items[uid] = value
		return nil
	}

	s.Lock()
	defer s.Unlock()

	s.items[uid] = value

	return s.save()
}

func (s *FileStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	value, exists := s.items[uid]

	return value, exists, nil
}

func (s *FileStore[T]) List(c context.Context) ([]T, error) {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	return mapValuesToSlice(s.items), nil
}

func (s *FileStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	all, err := s.List(c)
	if err != nil {
		return nil, err
	}

	return query(all, filters, orderByField)
}
