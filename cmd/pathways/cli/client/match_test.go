package client

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/mwantia/pathways/pkg/catalog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	cmd := NewMatchCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCollegesJSON(t *testing.T) {
	out, err := run(t, "colleges", "--budget", "60000", "--json")
	require.NoError(t, err)

	var res struct {
		Items []catalog.College `json:"items"`
		Total int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 10, res.Total)
	require.NotEmpty(t, res.Items)
	for _, c := range res.Items {
		assert.LessOrEqual(t, c.Tuition, 60000)
	}
}

func TestMatchCollegesNoMatches(t *testing.T) {
	out, err := run(t, "colleges", "--budget", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "No colleges match")
}

func TestMatchCollegesRejectsBadInput(t *testing.T) {
	_, err := run(t, "colleges", "--gpa", "5")
	assert.Error(t, err)
}

func TestMatchPrograms(t *testing.T) {
	out, err := run(t, "programs", "--gpa", "2.85")
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 4 programs")
}

func TestMatchCompareUsesCatalogOrder(t *testing.T) {
	out, err := run(t, "compare", "9", "2", "5", "--json")
	require.NoError(t, err)

	var res struct {
		Columns []int `json:"columns"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []int{2, 5, 9}, res.Columns)

	_, err = run(t, "compare", "99")
	assert.Error(t, err)
}
