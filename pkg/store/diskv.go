package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/wayfare/pkg/activity"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/progress"
)

// Persistence defines the durable storage contract: per-day itinerary
// lists, per-day timeline progress, and the premium flag.
//
// Reads are tolerant: malformed or missing blobs fall back to empty
// defaults and are never fatal. Writes report errors but callers are
// expected to log and carry on rather than abort the session.
type Persistence interface {
	Itinerary(ctx context.Context) map[datekey.Key][]*activity.Activity
	Day(ctx context.Context, day datekey.Key) []*activity.Activity
	SaveDay(day datekey.Key, list []*activity.Activity) error
	ProgressAll(ctx context.Context) map[datekey.Key]progress.State
	DayProgress(day datekey.Key) progress.State
	SaveProgress(day datekey.Key, st progress.State) error
	Premium() bool
	SetPremium(on bool) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// Buckets within the diskv tree. Keys look like `itinerary-2025-01-03`,
// which the transforms lay out as itinerary/2025/01/03.
const (
	bucketItinerary = "itinerary"
	bucketProgress  = "progress"
	bucketSettings  = "settings"

	premiumKey = bucketSettings + "-premium"
)

func itineraryKey(day datekey.Key) string {
	return fmt.Sprintf("%s-%s", bucketItinerary, day)
}

func progressKey(day datekey.Key) string {
	return fmt.Sprintf("%s-%s", bucketProgress, day)
}

func (p *persistence) Itinerary(ctx context.Context) map[datekey.Key][]*activity.Activity {
	all := make(map[datekey.Key][]*activity.Activity)
	for key := range p.d.Keys(ctx.Done()) {
		bucket, day := splitKey(key)
		if bucket != bucketItinerary || !day.Valid() {
			continue
		}
		list, err := p.readDay(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		if len(list) == 0 {
			continue
		}
		all[day] = list
	}
	return all
}

func (p *persistence) Day(_ context.Context, day datekey.Key) []*activity.Activity {
	list, err := p.readDay(itineraryKey(day))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", itineraryKey(day), err)
		}
		return nil
	}
	return list
}

// SaveDay writes the day's list, pruning date keys whose list is empty so
// the stored map never accumulates blank days.
func (p *persistence) SaveDay(day datekey.Key, list []*activity.Activity) error {
	key := itineraryKey(day)
	if len(list) == 0 {
		if p.d.Has(key) {
			return p.d.Erase(key)
		}
		return nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

func (p *persistence) ProgressAll(ctx context.Context) map[datekey.Key]progress.State {
	all := make(map[datekey.Key]progress.State)
	for key := range p.d.Keys(ctx.Done()) {
		bucket, day := splitKey(key)
		if bucket != bucketProgress || !day.Valid() {
			continue
		}
		st, err := p.readProgress(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all[day] = st
	}
	return all
}

// DayProgress reads one day's traversal state. Missing or malformed blobs
// read as fresh; stale entries for days with now-empty lists are fine, they
// clamp at the engine.
func (p *persistence) DayProgress(day datekey.Key) progress.State {
	st, err := p.readProgress(progressKey(day))
	if err != nil {
		return progress.Fresh()
	}
	return st
}

func (p *persistence) SaveProgress(day datekey.Key, st progress.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return p.d.Write(progressKey(day), data)
}

// Premium reads the subscription flag. Anything other than a stored true is
// false, the most restrictive default.
func (p *persistence) Premium() bool {
	val, err := p.d.Read(premiumKey)
	if err != nil {
		return false
	}
	var on bool
	if err := json.Unmarshal(val, &on); err != nil {
		return false
	}
	return on
}

func (p *persistence) SetPremium(on bool) error {
	data, err := json.Marshal(on)
	if err != nil {
		return err
	}
	return p.d.Write(premiumKey, data)
}

func (p *persistence) readDay(key string) ([]*activity.Activity, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	var list []*activity.Activity
	if err := json.Unmarshal(val, &list); err != nil {
		return nil, err
	}
	out := list[:0]
	for _, a := range list {
		if a == nil || a.ID == "" {
			continue
		}
		out = append(out, a)
	}
	activity.Sort(out)
	return out, nil
}

func (p *persistence) readProgress(key string) (progress.State, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return progress.Fresh(), err
	}
	st := progress.Fresh()
	if err := json.Unmarshal(val, &st); err != nil {
		return progress.Fresh(), err
	}
	return st, nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// splitKey separates the bucket prefix from the date portion of a key like
// `itinerary-2025-01-03`.
func splitKey(key string) (string, datekey.Key) {
	i := strings.Index(key, "-")
	if i < 0 {
		return key, ""
	}
	return key[:i], datekey.Key(key[i+1:])
}
