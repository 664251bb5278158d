// Package services holds use cases shared by more than one surface.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/chefmenu/app/catalog"
	"github.com/shashiranjanraj/chefmenu/app/models"
	"github.com/shashiranjanraj/chefmenu/app/views"
	"github.com/shashiranjanraj/chefmenu/pkg/logger"
	"github.com/shashiranjanraj/chefmenu/pkg/metrics"
	"github.com/shashiranjanraj/chefmenu/pkg/storage"
)

// CardContentType is stored with every published card.
const CardContentType = "text/plain; charset=utf-8"

// ErrUnknownCourse is returned when a card is requested for a course that
// does not exist.
var ErrUnknownCourse = errors.New("unknown course")

// PublishedCard tells the caller where a card landed.
type PublishedCard struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	Disk string `json:"disk"`
}

// CardPublisher renders guest menu cards and writes them to the default disk.
type CardPublisher struct {
	mu    sync.Mutex // serializes path picking and the write
	menu  *catalog.Catalog
	disks *storage.Manager
	now   func() time.Time
}

// NewCardPublisher returns a publisher. A nil now uses time.Now.
func NewCardPublisher(menu *catalog.Catalog, disks *storage.Manager, now func() time.Time) *CardPublisher {
	if now == nil {
		now = time.Now
	}
	return &CardPublisher{menu: menu, disks: disks, now: now}
}

// Publish writes the card for filter ("", "all" or a course id) to
// menus/<filter>-<unix millis>.txt. An existing card is never overwritten:
// a second card in the same millisecond gets a -2, -3, ... suffix.
func (p *CardPublisher) Publish(ctx context.Context, filter string) (PublishedCard, error) {
	filter = catalog.NormalizeFilter(filter)
	if filter != catalog.FilterAll && !models.IsCourse(filter) {
		return PublishedCard{}, fmt.Errorf("%w: %q", ErrUnknownCourse, filter)
	}

	disk, err := p.disks.Default()
	if err != nil {
		return PublishedCard{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	card := views.Card(catalog.GuestView(p.menu, filter))
	path, err := freePath(ctx, disk, fmt.Sprintf("menus/%s-%d", filter, p.now().UnixMilli()))
	if err != nil {
		return PublishedCard{}, fmt.Errorf("publish card to %s: %w", disk.Name(), err)
	}
	if err := disk.Put(ctx, path, []byte(card), CardContentType); err != nil {
		return PublishedCard{}, fmt.Errorf("publish %s to %s: %w", path, disk.Name(), err)
	}

	metrics.CardsPublished.WithLabelValues(disk.Name()).Inc()
	logger.WithCtx(ctx).Info("menu card published", "disk", disk.Name(), "path", path)
	return PublishedCard{Path: path, URL: disk.URL(path), Disk: disk.Name()}, nil
}

func freePath(ctx context.Context, disk storage.Disk, base string) (string, error) {
	path := base + ".txt"
	for n := 2; ; n++ {
		taken, err := disk.Exists(ctx, path)
		if err != nil || !taken {
			return path, err
		}
		path = fmt.Sprintf("%s-%d.txt", base, n)
	}
}
