package plantdb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEmbeddedDataset(t *testing.T) {
	db := newTestDB(t)

	assert.Equal(t, 3, db.Count())
	assert.Equal(t, []string{"apple", "corn", "tomato"}, db.IDs())

	for _, p := range db.All() {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.ScientificName)
		assert.NotEmpty(t, p.Diseases, "plant %s has no diseases", p.ID)
		assert.NotEmpty(t, p.HealthyInfo.CareTips, "plant %s has no care tips", p.ID)
		assert.NotEmpty(t, p.SoilConditions.PHRange)
		assert.NotEmpty(t, p.WeatherConditions.Temperature)
		assert.NotEmpty(t, p.SuitableRegions)
		for id, dis := range p.Diseases {
			assert.NotEmpty(t, dis.Name, "disease %s/%s has no name", p.ID, id)
			assert.NotEmpty(t, dis.Treatment)
			assert.NotEmpty(t, dis.Prevention)
			assert.NotEmpty(t, dis.ImmediateAction)
		}
	}
}

func TestGet(t *testing.T) {
	db := newTestDB(t)

	p, ok := db.Get("tomato")
	require.True(t, ok)
	assert.Equal(t, "Tomato", p.Name)
	assert.Equal(t, "Solanum lycopersicum", p.ScientificName)

	_, ok = db.Get("banana")
	assert.False(t, ok)

	// lookup tolerates case and surrounding whitespace
	p, ok = db.Get("  Apple ")
	require.True(t, ok)
	assert.Equal(t, "Apple", p.Name)
}

func TestGetByName(t *testing.T) {
	db := newTestDB(t)

	p, ok := db.GetByName("CORN")
	require.True(t, ok)
	assert.Equal(t, "corn", p.ID)

	_, ok = db.GetByName("wheat")
	assert.False(t, ok)
}

func TestAllDiseases(t *testing.T) {
	db := newTestDB(t)

	entries := db.AllDiseases()
	assert.Len(t, entries, 6)

	// sorted by plant then disease id
	assert.Equal(t, "apple", entries[0].PlantID)
	assert.Equal(t, "apple_scab", entries[0].DiseaseID)
	assert.Equal(t, "tomato", entries[len(entries)-1].PlantID)
}

func TestSearch(t *testing.T) {
	db := newTestDB(t)

	matches := db.Search("solanum")
	require.Len(t, matches, 1)
	assert.Equal(t, "tomato", matches[0].ID)

	assert.Len(t, db.Search(""), 3)
	assert.Empty(t, db.Search("wheat"))
}

func TestFindDisease(t *testing.T) {
	db := newTestDB(t)

	plant, dis, ok := db.FindDisease("late blight")
	require.True(t, ok)
	assert.Equal(t, "Tomato", plant.Name)
	assert.Equal(t, "Critical", dis.Severity)

	_, _, ok = db.FindDisease("rust")
	assert.False(t, ok)
}

func TestWatcherPicksUpLateDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.json")

	// file does not exist yet: embedded dataset serves in the meantime
	db, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.Equal(t, 3, db.Count())

	data := `{"plants":{
		"wheat":{"name":"Wheat","scientific_name":"Triticum aestivum","family":"Poaceae","category":"Cereal",
			"diseases":{"leaf_rust":{"name":"Leaf Rust","severity":"High","type":"Fungal","symptoms":"Orange pustules on leaves","causes":"Puccinia triticina spores","prevention":["Plant resistant varieties"],"treatment":["Apply triazole fungicide"],"immediate_action":"Scout the field and treat infected patches"}},
			"healthy_info":{"care_tips":["Drill seed at an even depth"],"harvesting":"Harvest at 13-14% grain moisture","nutrition":"Staple source of carbohydrates and protein"},
			"soil_conditions":{"ph_range":"6.0-7.0","drainage":"Well-drained loam","nutrients":"Nitrogen at tillering","depth":"Deep rooting zone"},
			"weather_conditions":{"temperature":"12-25C","rainfall":"Moderate","humidity":"Low to medium","sunlight":"Full sun"},
			"suitable_regions":["Plains","Steppe"]}}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	require.Eventually(t, func() bool {
		_, ok := db.Get("wheat")
		return ok && db.Count() == 1
	}, 3*time.Second, 25*time.Millisecond, "watcher should load the file created after startup")
}

func TestLoadRejectsEmptyDataset(t *testing.T) {
	db := newTestDB(t)

	err := db.load([]byte(`{"plants": {}}`))
	assert.Error(t, err)
	// previous dataset stays intact after a rejected load
	assert.Equal(t, 3, db.Count())
}
