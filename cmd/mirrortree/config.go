package main

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/g-m-twostay/go-trees/Trees"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type TreeConfig struct {
	Size int   `yaml:"size"`
	Step int   `yaml:"step"`
	Seed int64 `yaml:"seed"`
}

type DuplicatesConfig struct {
	BST string `yaml:"bst"`
	AVL string `yaml:"avl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Tree       TreeConfig       `yaml:"tree"`
	Duplicates DuplicatesConfig `yaml:"duplicates"`
	Log        LogConfig        `yaml:"log"`
}

var defaultConfig = Config{
	Tree:       TreeConfig{Size: 6, Step: 5, Seed: 1},
	Duplicates: DuplicatesConfig{BST: "reject", AVL: "accept"},
	Log:        LogConfig{Level: "warning"},
}

func defaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".mirrortree.yaml"), nil
}

// LoadConfig from path, or from the default path when path is empty. A missing file yields the
// defaults; keys absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	config := defaultConfig
	if path == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return &config, nil
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &config, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, config.validate()
}

func (c *Config) validate() error {
	if c.Tree.Size < 0 || c.Tree.Size >= math.MaxUint16 {
		return fmt.Errorf("tree.size must be in [0, %d), got %d", math.MaxUint16, c.Tree.Size)
	}
	if c.Tree.Step <= 0 {
		return fmt.Errorf("tree.step must be positive, got %d", c.Tree.Step)
	}
	if _, _, err := c.duplicates(); err != nil {
		return err
	}
	_, err := c.level()
	return err
}

func parseDuplicates(s string) (Trees.Duplicates, error) {
	switch s {
	case Trees.RejectDuplicates.String():
		return Trees.RejectDuplicates, nil
	case Trees.AcceptDuplicates.String():
		return Trees.AcceptDuplicates, nil
	}
	return 0, fmt.Errorf("unknown duplicates policy %q, want reject or accept", s)
}

func (c *Config) duplicates() (bst, avl Trees.Duplicates, err error) {
	if bst, err = parseDuplicates(c.Duplicates.BST); err != nil {
		return
	}
	avl, err = parseDuplicates(c.Duplicates.AVL)
	return
}

func (c *Config) level() (logrus.Level, error) {
	return logrus.ParseLevel(c.Log.Level)
}

// seeds are 1, 1+step, 1+2*step, ... below step*(size+1), shuffled with the configured seed.
func (c *Config) seeds() []int {
	var vs []int
	for v := 1; v < c.Tree.Step*(c.Tree.Size+1); v += c.Tree.Step {
		vs = append(vs, v)
	}
	rg := newRand(c.Tree.Seed)
	rg.Shuffle(len(vs), func(i, j int) { vs[i], vs[j] = vs[j], vs[i] })
	return vs
}
