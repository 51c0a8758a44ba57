// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store keeps the variables of named sessions in a bbolt
// database, so that a series of evaluations can share state.
// Values are stored in the YAML encoding of package tree.
package store // import "robpike.io/ul4/store"

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"robpike.io/ul4/tree"
	"robpike.io/ul4/value"
)

var sessionsBucket = []byte("sessions")

// Store is an open session database.
type Store struct {
	db  *bolt.DB
	log *zap.SugaredLogger
}

// Open opens or creates the database at path.
func Open(path string, log *zap.SugaredLogger) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening session store %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating sessions bucket")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the variables of session in name order.
// An unknown session has no variables.
func (s *Store) Load(session string) ([]value.Keyword, error) {
	var vars []value.Keyword
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionsBucket).Bucket([]byte(session))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, data []byte) error {
			var n yaml.Node
			if err := yaml.Unmarshal(data, &n); err != nil {
				return errors.Wrapf(err, "variable %s", k)
			}
			v, err := tree.ValueOf(&n)
			if err != nil {
				return errors.Wrapf(err, "variable %s", k)
			}
			vars = append(vars, value.Keyword{Name: string(k), Value: v})
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrapf(err, "loading session %s", session)
	}
	return vars, nil
}

// Save replaces the variables of session with vars. Values that
// cannot be encoded, such as templates, are skipped and logged.
func (s *Store) Save(session string, vars map[string]value.Value) error {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	encoded := make(map[string][]byte, len(vars))
	for _, name := range names {
		n, err := tree.NodeOf(vars[name])
		if err != nil {
			s.log.Infow("not saving variable", "session", session, "name", name, "type", value.TypeName(vars[name]), "reason", err)
			continue
		}
		data, err := yaml.Marshal(n)
		if err != nil {
			return errors.Wrapf(err, "encoding variable %s", name)
		}
		encoded[name] = data
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(sessionsBucket)
		if root.Bucket([]byte(session)) != nil {
			if err := root.DeleteBucket([]byte(session)); err != nil {
				return err
			}
		}
		b, err := root.CreateBucket([]byte(session))
		if err != nil {
			return err
		}
		for name, data := range encoded {
			if err := b.Put([]byte(name), data); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrapf(err, "saving session %s", session)
}

// Sessions returns the names of all sessions.
func (s *Store) Sessions() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).ForEachBucket(func(k []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, errors.Wrap(err, "listing sessions")
}

// Delete removes a session. Deleting an unknown session is not an error.
func (s *Store) Delete(session string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket(sessionsBucket).DeleteBucket([]byte(session))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
	return errors.Wrapf(err, "deleting session %s", session)
}
