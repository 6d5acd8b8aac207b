package gherkin

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gherkit/gherkit/internal/constants"
	"github.com/gherkit/gherkit/internal/domain"
	gherkiterrors "github.com/gherkit/gherkit/internal/errors"
)

// Discover expands the given paths into a sorted list of feature files.
// Directories are walked recursively for *.feature files; explicit file
// paths are taken as-is. Returns ErrNoFeatures when nothing is found.
func Discover(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		matches, err := discoverPath(path)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			add(m)
		}
	}

	if len(files) == 0 {
		return nil, gherkiterrors.Wrapf(gherkiterrors.ErrNoFeatures, "paths %s", strings.Join(paths, ", "))
	}
	sort.Strings(files)
	return files, nil
}

func discoverPath(path string) ([]string, error) {
	info, err := filepath.Glob(path)
	if err != nil {
		return nil, gherkiterrors.Wrapf(err, "glob %s", path)
	}

	var files []string
	for _, match := range info {
		stat, err := os.Stat(match)
		if err != nil {
			return nil, gherkiterrors.Wrapf(err, "stat %s", match)
		}
		if !stat.IsDir() {
			files = append(files, match)
			continue
		}
		err = filepath.WalkDir(match, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && strings.HasSuffix(p, constants.FeatureFileExtension) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, gherkiterrors.Wrapf(err, "walk %s", match)
		}
	}
	return files, nil
}

// Load discovers, parses, and flattens every feature at the given paths into
// the ordered scenario list a runner consumes.
func Load(paths []string) ([]domain.Scenario, error) {
	files, err := Discover(paths)
	if err != nil {
		return nil, err
	}

	var scenarios []domain.Scenario
	for _, file := range files {
		feature, err := ParseFile(file)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, feature.Scenarios...)
	}
	return scenarios, nil
}
