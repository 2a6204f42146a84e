package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/g-m-twostay/go-trees/Trees"
	"github.com/g-m-twostay/go-trees/Workers"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mirrortree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig, *cfg)

	cfg, err = LoadConfig(writeConfig(t, "tree:\n  size: 10\n  seed: 7\nduplicates:\n  bst: accept\nlog:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, TreeConfig{Size: 10, Step: 5, Seed: 7}, cfg.Tree)
	bst, avl, err := cfg.duplicates()
	require.NoError(t, err)
	assert.Equal(t, Trees.AcceptDuplicates, bst)
	assert.Equal(t, Trees.AcceptDuplicates, avl)
	level, err := cfg.level()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)

	for _, body := range []string{
		"duplicates:\n  avl: maybe\n",
		"tree:\n  step: 0\n",
		"tree:\n  size: 65535\n",
		"tree:\n  size: -1\n",
		"log:\n  level: loud\n",
		"tree: [1, 2\n",
	} {
		_, err = LoadConfig(writeConfig(t, body))
		assert.Error(t, err, body)
	}
}

func TestConfig_Seeds(t *testing.T) {
	cfg := defaultConfig
	vs := cfg.seeds()
	assert.ElementsMatch(t, []int{1, 6, 11, 16, 21, 26, 31}, vs)
	assert.Equal(t, vs, cfg.seeds(), "same seed, different order")
	cfg.Tree.Size = 0
	assert.Equal(t, []int{1}, cfg.seeds())
}

func TestParseCommand(t *testing.T) {
	for _, c := range []struct {
		in   string
		want Workers.Command[int]
	}{
		{"i5", Workers.Command[int]{Op: Workers.Insert, Value: 5}},
		{"d-3", Workers.Command[int]{Op: Workers.Delete, Value: -3}},
		{"s42", Workers.Command[int]{Op: Workers.Search, Value: 42}},
	} {
		got, err := parseCommand(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
	for _, in := range []string{"", "i", "x5", "iv"} {
		_, err := parseCommand(in)
		assert.Error(t, err, in)
	}
}

func TestDemo(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, demo(&out))
	s := out.String()
	for _, line := range []string{
		"pre-order: 5 7 8 6 4 1 2 3\n",
		"in-order: 8 7 6 5 4 3 2 1\n",
		"post-order: 8 6 7 3 2 1 4 5\n",
		"successor(5): 4\n",
		"predecessor(4): 5\n",
		"leftmost: 8, rightmost: 1\n",
		"post-order after deleting 7: 8 6 3 2 1 4 5\n",
	} {
		assert.Contains(t, s, line)
	}
}

func TestRun(t *testing.T) {
	cfg := defaultConfig
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, &cfg, "avl", []string{"i6", "s6", "d6", "s6", "d100", "i100"}))
	s := out.String()
	for _, line := range []string{
		"i6: bst rejected, avl inserted\n",
		"s6: bst found, avl found\n",
		"d6: bst deleted, avl deleted\n",
		"s6: bst absent, avl found\n",
		"d100: bst absent, avl absent\n",
		"i100: bst inserted, avl inserted\n",
		"avl (8 nodes)",
		"bf=",
	} {
		assert.Contains(t, s, line)
	}

	out.Reset()
	require.NoError(t, run(context.Background(), &out, &cfg, "bst", nil))
	assert.Contains(t, out.String(), "bst (7 nodes)")
	assert.NotContains(t, out.String(), "bf=")

	assert.Error(t, run(context.Background(), &out, &cfg, "rbt", nil))
	assert.Error(t, run(context.Background(), &out, &cfg, "bst", []string{"q1"}))
}

func TestRender_Empty(t *testing.T) {
	var out bytes.Buffer
	render(&out, "bst", Trees.NewBST[int, uint16](), nil)
	assert.Contains(t, out.String(), "(empty)")
}

func TestMeasure(t *testing.T) {
	if testing.Short() {
		t.Skip("benchmarks")
	}
	var out bytes.Buffer
	require.NoError(t, measure(&out, 200, 2, 1))
	assert.Contains(t, out.String(), "bst average:")
	assert.Contains(t, out.String(), "avl stddev:")
	assert.Error(t, measure(&out, 1, 2, 1))
}

func TestRootCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "run", "--view", "bst", "i2"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "i2: bst inserted, avl inserted")
	assert.Contains(t, out.String(), "bst (8 nodes)")
}
