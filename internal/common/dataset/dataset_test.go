package dataset

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplychain-insights/internal/common/config"
)

const ordersCSV = `category,order_value_inr,city
Electronics,1000,Mumbai
Electronics,3000,Delhi
Fashion,500,Pune
broken,row
Fashion,,Mumbai
Grocery,abc,Pune
`

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(context.Background(), "orders_sample", strings.NewReader(ordersCSV), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"category", "order_value_inr", "city"}, table.Columns)
	assert.Equal(t, 5, table.Len())

	values, err := table.Floats("order_value_inr")
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 3000, 500}, values)

	_, err = table.Column("rating")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestReadCSV_Limit(t *testing.T) {
	table, err := ReadCSV(context.Background(), "orders_sample", strings.NewReader(ordersCSV), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestGroupBy(t *testing.T) {
	table, err := ReadCSV(context.Background(), "orders_sample", strings.NewReader(ordersCSV), 0)
	require.NoError(t, err)

	groups, err := GroupBy(table, "category", "order_value_inr")
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "Electronics", groups[0].Key)
	s := groups[0].Stats("order_value_inr")
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 4000.0, s.Sum)
	assert.Equal(t, 2000.0, s.Mean)
	assert.InDelta(t, 1414.2136, s.Std, 1e-3)

	assert.Equal(t, 2, groups[1].Size)
	fashion := groups[1].Stats("order_value_inr")
	assert.Equal(t, 1, fashion.Count)
	assert.Equal(t, 0.0, fashion.Std)

	assert.Equal(t, 0, groups[2].Stats("order_value_inr").Count)

	_, err = GroupBy(table, "warehouse_id")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 3.0, Median([]float64{5, 3, 1}))
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 0.0, SafeDiv(1, 0))
	assert.Equal(t, 0.0, Finite(math.NaN()))
	assert.Equal(t, 0.0, Finite(math.Inf(1)))
	assert.Equal(t, 1.23, Round(1.2345, 2))
	assert.Equal(t, Stats{}, Describe(nil))

	_, ok := ParseFloat("NaN")
	assert.False(t, ok)
}

func TestCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders_sample.csv"), []byte(ordersCSV), 0o644))

	catalog, err := FromConfig(config.AnalyticsConfig{
		Datasets: map[string]config.DatasetConfig{
			"orders_sample": {Kind: config.DatasetKindCSV, Path: "orders_sample.csv"},
			"warehouse_ops_sample": {Kind: config.DatasetKindCSV},
		},
	}, map[string]Source{config.DatasetKindCSV: CSVSource{Dir: dir}})
	require.NoError(t, err)
	assert.Equal(t, []string{"orders_sample", "warehouse_ops_sample"}, catalog.Names())

	table, err := catalog.Load(context.Background(), "orders_sample")
	require.NoError(t, err)
	assert.Equal(t, "orders_sample", table.Name)

	_, err = catalog.Load(context.Background(), "warehouse_ops_sample")
	assert.ErrorIs(t, err, ErrDatasetNotFound)

	_, err = catalog.Load(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestFromConfig_MissingSource(t *testing.T) {
	_, err := FromConfig(config.AnalyticsConfig{
		Datasets: map[string]config.DatasetConfig{"orders_sample": {Kind: config.DatasetKindPostgres}},
	}, map[string]Source{})
	assert.Error(t, err)
}
