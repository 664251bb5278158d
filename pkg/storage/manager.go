package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/shashiranjanraj/chefmenu/config"
	"github.com/shashiranjanraj/chefmenu/pkg/logger"
)

// ErrDiskNotConfigured is returned when a disk name has no driver behind it.
var ErrDiskNotConfigured = errors.New("storage: disk is not configured")

// Manager holds the named disks and the default one.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
}

// NewManager returns an empty manager whose default disk is defaultDisk.
func NewManager(defaultDisk string) *Manager {
	return &Manager{disks: map[string]Disk{}, defaultDisk: defaultDisk}
}

// FromConfig boots the local disk, plus the s3 disk when S3_BUCKET is set.
// A broken s3 configuration is logged and the disk left out.
func FromConfig(ctx context.Context) (*Manager, error) {
	m := NewManager(config.StorageDefault())

	local, err := NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	if err != nil {
		return nil, err
	}
	m.Register("local", local)

	if bucket := config.StorageS3Bucket(); bucket != "" {
		d, err := NewS3Disk(ctx, S3Config{
			Bucket:   bucket,
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			URL:      config.StorageS3URL(),
		})
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			m.Register("s3", d)
		}
	}
	return m, nil
}

// Register adds or replaces a named disk.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	m.disks[name] = d
	m.mu.Unlock()
}

// Disk returns the named disk.
func (m *Manager) Disk(name string) (Disk, error) {
	m.mu.RLock()
	d, ok := m.disks[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDiskNotConfigured, name)
	}
	return d, nil
}

// Default returns the disk named by STORAGE_DISK.
func (m *Manager) Default() (Disk, error) { return m.Disk(m.defaultDisk) }

// Names lists the registered disks, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.disks))
	for n := range m.disks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
