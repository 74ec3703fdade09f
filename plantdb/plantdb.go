// Package plantdb holds the agricultural knowledge base: plants, their
// diseases, healthy-care guidance and growing conditions. The default
// dataset is embedded; an optional external JSON file can override it
// and is hot-reloaded when it changes on disk.
package plantdb

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/Lingaraj8064/Crop-AI-Sys/models"
)

//go:embed data/plants.json
var defaultData []byte

// Disease describes a single plant disease and how to handle it.
type Disease struct {
	Name             string   `json:"name"`
	Severity         string   `json:"severity"`
	Type             string   `json:"type"`
	Symptoms         string   `json:"symptoms"`
	Causes           string   `json:"causes"`
	Prevention       []string `json:"prevention"`
	Treatment        []string `json:"treatment"`
	OrganicTreatment []string `json:"organic_treatment,omitempty"`
	ImmediateAction  string   `json:"immediate_action"`
}

// HealthyInfo carries care guidance for a plant that shows no disease.
type HealthyInfo struct {
	CareTips   []string `json:"care_tips"`
	Harvesting string   `json:"harvesting"`
	Nutrition  string   `json:"nutrition"`
}

// Plant is one knowledge base entry.
type Plant struct {
	ID                string                   `json:"-"`
	Name              string                   `json:"name"`
	ScientificName    string                   `json:"scientific_name"`
	Family            string                   `json:"family"`
	Category          string                   `json:"category"`
	Diseases          map[string]Disease       `json:"diseases"`
	HealthyInfo       HealthyInfo              `json:"healthy_info"`
	SoilConditions    models.SoilConditions    `json:"soil_conditions"`
	WeatherConditions models.WeatherConditions `json:"weather_conditions"`
	SuitableRegions   []string                 `json:"suitable_regions"`
}

// DiseaseEntry pairs a disease with the plant it belongs to, for
// catalog listings that span the whole database.
type DiseaseEntry struct {
	PlantID   string
	PlantName string
	DiseaseID string
	Disease   Disease
}

type dataFile struct {
	Plants map[string]Plant `json:"plants"`
}

// DB is the in-memory plant database. All lookups are safe for
// concurrent use; a reload swaps the plant map atomically.
type DB struct {
	mu       sync.RWMutex
	plants   map[string]Plant
	filePath string
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// New builds the database from the embedded dataset. If filePath is
// non-empty its contents replace the embedded data, and a watcher
// reloads the file whenever it is rewritten or first appears on disk.
func New(filePath string) (*DB, error) {
	db := &DB{filePath: filePath, done: make(chan struct{})}

	if err := db.load(defaultData); err != nil {
		return nil, fmt.Errorf("parsing embedded plant data: %w", err)
	}

	if filePath == "" {
		return db, nil
	}

	data, err := os.ReadFile(filePath)
	switch {
	case os.IsNotExist(err):
		// keep watching so the file is picked up once it appears
		log.Printf("[PLANT DB] Data file %s not found, using embedded dataset", filePath)
	case err != nil:
		return nil, fmt.Errorf("reading plant data file: %w", err)
	default:
		if err := db.load(data); err != nil {
			return nil, fmt.Errorf("parsing plant data file %s: %w", filePath, err)
		}
		log.Printf("[PLANT DB] Loaded %d plants from %s", db.Count(), filePath)
	}

	if err := db.startWatcher(); err != nil {
		log.Printf("[PLANT DB] File watching disabled: %v", err)
	}
	return db, nil
}

func (d *DB) load(data []byte) error {
	var f dataFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if len(f.Plants) == 0 {
		return fmt.Errorf("no plants in dataset")
	}
	for id, p := range f.Plants {
		p.ID = id
		f.Plants[id] = p
	}

	d.mu.Lock()
	d.plants = f.Plants
	d.mu.Unlock()
	return nil
}

// startWatcher watches the directory containing the data file. Editors
// often replace files via rename, so watching the file itself would
// lose the watch after the first save.
func (d *DB) startWatcher() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(d.filePath)); err != nil {
		w.Close()
		return err
	}
	d.watcher = w

	go func() {
		target := filepath.Base(d.filePath)
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				data, err := os.ReadFile(d.filePath)
				if err != nil {
					log.Printf("[PLANT DB] Reload read failed: %v", err)
					continue
				}
				if err := d.load(data); err != nil {
					log.Printf("[PLANT DB] Reload rejected, keeping previous dataset: %v", err)
					continue
				}
				log.Printf("[PLANT DB] Reloaded %d plants from %s", d.Count(), d.filePath)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("[PLANT DB] Watcher error: %v", err)
			case <-d.done:
				return
			}
		}
	}()
	return nil
}

// Close stops the file watcher if one is running.
func (d *DB) Close() error {
	close(d.done)
	if d.watcher != nil {
		return d.watcher.Close()
	}
	return nil
}

// Count returns the number of plants in the database.
func (d *DB) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.plants)
}

// Get looks a plant up by its identifier.
func (d *DB) Get(id string) (Plant, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.plants[strings.ToLower(strings.TrimSpace(id))]
	return p, ok
}

// GetByName looks a plant up by its display name, case-insensitively.
func (d *DB) GetByName(name string) (Plant, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, p := range d.plants {
		if strings.ToLower(p.Name) == name {
			return p, true
		}
	}
	return Plant{}, false
}

// IDs returns all plant identifiers in sorted order.
func (d *DB) IDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]string, 0, len(d.plants))
	for id := range d.plants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every plant, sorted by identifier.
func (d *DB) All() []Plant {
	d.mu.RLock()
	defer d.mu.RUnlock()
	plants := make([]Plant, 0, len(d.plants))
	for _, p := range d.plants {
		plants = append(plants, p)
	}
	sort.Slice(plants, func(i, j int) bool { return plants[i].ID < plants[j].ID })
	return plants
}

// AllDiseases returns every disease across every plant, sorted by
// plant then disease identifier.
func (d *DB) AllDiseases() []DiseaseEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var entries []DiseaseEntry
	for pid, p := range d.plants {
		for did, dis := range p.Diseases {
			entries = append(entries, DiseaseEntry{
				PlantID:   pid,
				PlantName: p.Name,
				DiseaseID: did,
				Disease:   dis,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PlantID != entries[j].PlantID {
			return entries[i].PlantID < entries[j].PlantID
		}
		return entries[i].DiseaseID < entries[j].DiseaseID
	})
	return entries
}

// Search returns plants whose id, name or scientific name contains
// the query, case-insensitively.
func (d *DB) Search(query string) []Plant {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return d.All()
	}

	var matches []Plant
	for _, p := range d.All() {
		if strings.Contains(p.ID, query) ||
			strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.ScientificName), query) {
			matches = append(matches, p)
		}
	}
	return matches
}

// FindDisease locates a disease by name across all plants.
func (d *DB) FindDisease(name string) (Plant, Disease, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, p := range d.plants {
		for _, dis := range p.Diseases {
			if strings.ToLower(dis.Name) == name {
				return p, dis, true
			}
		}
	}
	return Plant{}, Disease{}, false
}
