package consent

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// rulesFile is the YAML shape of a consent rules file:
//
//	default_allow: false
//	grants:
//	  - purpose: analytics
//	    subject: subject-42
//	    granted: true
//	  - purpose: marketing
//	    subject: "*"
//	    granted: false
type rulesFile struct {
	DefaultAllow bool        `yaml:"default_allow"`
	Grants       []ruleEntry `yaml:"grants"`
}

type ruleEntry struct {
	Purpose string `yaml:"purpose"`
	Subject string `yaml:"subject"`
	Granted bool   `yaml:"granted"`
}

// FileStore answers consent checks from a YAML rules file. When watching
// is enabled the file is reloaded on change; a reload that fails keeps the
// previous rule set so checks never observe a half-written file.
type FileStore struct {
	path   string
	logger *slog.Logger

	mu           sync.RWMutex
	grants       map[grantKey]bool
	defaultAllow bool
	loaded       bool

	watcher   *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewFileStore loads the rules file at path. The initial load must
// succeed; later reload failures only log.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &FileStore{
		path:   path,
		logger: logger.With("component", "consent.file"),
		done:   make(chan struct{}),
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Watch starts reloading the rules file on filesystem changes. Call Close
// to stop the watcher.
func (s *FileStore) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create consent watcher: %w", err)
	}
	if err := watcher.Add(s.path); err != nil {
		watcher.Close()
		return fmt.Errorf("watch consent rules %q: %w", s.path, err)
	}
	s.watcher = watcher

	s.wg.Add(1)
	go s.watchLoop()

	s.logger.Info("consent rules watcher started", "path", s.path)
	return nil
}

func (s *FileStore) watchLoop() {
	defer s.wg.Done()
	// Editors often emit bursts of events for one save; a short debounce
	// collapses them into a single reload.
	const debounce = 100 * time.Millisecond
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerCh = timer.C
			} else {
				timer.Reset(debounce)
			}
		case <-timerCh:
			timer = nil
			timerCh = nil
			if err := s.reload(); err != nil {
				s.logger.Error("consent rules reload failed, keeping previous rules",
					"path", s.path, "error", err)
				continue
			}
			s.logger.Info("consent rules reloaded", "path", s.path)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("consent watcher error", "error", err)
		}
	}
}

// Close stops the watcher, if one was started. It is safe to call more
// than once.
func (s *FileStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.watcher != nil {
			err = s.watcher.Close()
		}
		s.wg.Wait()
	})
	return err
}

// reload parses the rules file and swaps the rule set atomically.
func (s *FileStore) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read consent rules %q: %w", s.path, err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse consent rules %q: %w", s.path, err)
	}

	grants := make(map[grantKey]bool, len(f.Grants))
	for _, rule := range f.Grants {
		grants[grantKey{purpose: rule.Purpose, subject: rule.Subject}] = rule.Granted
	}

	s.mu.Lock()
	s.grants = grants
	s.defaultAllow = f.DefaultAllow
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// IsGranted answers from the loaded rules with the same precedence as
// StaticStore: exact pair, purpose wildcard, subject wildcard, default.
func (s *FileStore) IsGranted(ctx context.Context, purposeID, subjectID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return false, fmt.Errorf("consent rules not loaded")
	}
	for _, key := range []grantKey{
		{purpose: purposeID, subject: subjectID},
		{purpose: purposeID, subject: "*"},
		{purpose: "*", subject: subjectID},
	} {
		if granted, ok := s.grants[key]; ok {
			return granted, nil
		}
	}
	return s.defaultAllow, nil
}
