package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// demoKeyPrefix namespaces locally persisted demo payloads.
const demoKeyPrefix = "vendaflow.demo."

// State is everything the client persists between runs.
type State struct {
	Token string `yaml:"token,omitempty"`
	User  *User  `yaml:"user,omitempty"`
	Mode  Mode   `yaml:"mode,omitempty"`
	// Demo holds JSON payloads keyed by DemoKey(endpoint). They take
	// precedence over the built-in demo registry.
	Demo map[string]string `yaml:"demo,omitempty"`
}

// DemoKey returns the namespaced key under which a local payload for endpoint
// is stored.
func DemoKey(endpoint Endpoint) string {
	return demoKeyPrefix + string(endpoint)
}

// Store loads and saves State.
type Store interface {
	Load() (State, error)
	Save(State) error
}

// FileStore keeps State in a YAML file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// Load returns an empty State when the file does not exist yet.
func (s *FileStore) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("read state %s: %w", s.path, err)
	}
	var st State
	if err := yaml.Unmarshal(raw, &st); err != nil {
		return State{}, fmt.Errorf("decode state %s: %w", s.path, err)
	}
	return st, nil
}

// Save writes the state with owner-only permissions since it carries the
// session token.
func (s *FileStore) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// MemoryStore keeps State in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	state State
}

func NewMemoryStore(initial State) *MemoryStore {
	return &MemoryStore{state: initial}
}

func (s *MemoryStore) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.Demo != nil {
		st.Demo = make(map[string]string, len(s.state.Demo))
		for k, v := range s.state.Demo {
			st.Demo[k] = v
		}
	}
	return st, nil
}

func (s *MemoryStore) Save(st State) error {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

// LocalProvider answers requests without the network. ok is false when the
// provider has nothing for the endpoint.
type LocalProvider interface {
	Handle(ctx context.Context, endpoint Endpoint, opts RequestOptions) (data json.RawMessage, ok bool, err error)
}

// StateProvider serves the persisted profile and demo payloads from a Store.
type StateProvider struct {
	store Store
}

func NewStateProvider(store Store) *StateProvider {
	return &StateProvider{store: store}
}

func (p *StateProvider) Handle(_ context.Context, endpoint Endpoint, _ RequestOptions) (json.RawMessage, bool, error) {
	st, err := p.store.Load()
	if err != nil {
		return nil, false, err
	}
	if raw, ok := st.Demo[DemoKey(endpoint)]; ok {
		if !json.Valid([]byte(raw)) {
			return nil, false, fmt.Errorf("local payload for %s is not valid JSON", endpoint)
		}
		return json.RawMessage(raw), true, nil
	}
	if endpoint == EndpointMe && st.User != nil {
		raw, err := json.Marshal(st.User)
		if err != nil {
			return nil, false, err
		}
		return raw, true, nil
	}
	return nil, false, nil
}
