package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"todo/internal/parser"
	"todo/internal/task"
)

// ErrCategoryNotFound is returned when a category has no file.
var ErrCategoryNotFound = errors.New("category not found")

// Store is a directory holding one <category>.<ext> file per category.
type Store struct {
	dir string
	ext string
}

func Open(dir, ext string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("todo directory is empty")
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return nil, errors.New("file extension is empty")
	}
	return &Store{dir: dir, ext: ext}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing category. It does not check existence.
func (s *Store) Path(category string) string {
	return filepath.Join(s.dir, category+"."+s.ext)
}

func (s *Store) Exists(category string) bool {
	if validCategory(category) != nil {
		return false
	}
	info, err := os.Stat(s.Path(category))
	return err == nil && info.Mode().IsRegular()
}

// Categories lists the categories in the directory, sorted by name.
func (s *Store) Categories() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read todo directory: %w", err)
	}
	suffix := "." + s.ext
	var cats []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, suffix) || strings.HasPrefix(name, ".") {
			continue
		}
		if cat := strings.TrimSuffix(name, suffix); cat != "" {
			cats = append(cats, cat)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

// Load parses one category file.
func (s *Store) Load(category string) (parser.Result, error) {
	if err := validCategory(category); err != nil {
		return parser.Result{Category: category}, err
	}
	res, err := parser.ParseFile(s.Path(category), category)
	if errors.Is(err, os.ErrNotExist) {
		return res, fmt.Errorf("%w: %s", ErrCategoryNotFound, category)
	}
	if err != nil {
		return res, fmt.Errorf("load %s: %w", category, err)
	}
	return res, nil
}

// LoadAll parses categories concurrently. Results are in the order given;
// a nil or empty list loads every category in the directory.
func (s *Store) LoadAll(ctx context.Context, categories []string) ([]parser.Result, error) {
	if len(categories) == 0 {
		var err error
		if categories, err = s.Categories(); err != nil {
			return nil, err
		}
	}

	results := make([]parser.Result, len(categories))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, cat := range categories {
		i, cat := i, cat
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.Load(cat)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Create makes a new, possibly seeded, category file. It fails if the
// category already exists.
func (s *Store) Create(category, firstSummary string) error {
	if err := validCategory(category); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("create todo directory: %w", err)
	}
	f, err := os.OpenFile(s.Path(category), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", category, err)
	}
	defer f.Close()

	if summary := strings.TrimSpace(firstSummary); summary != "" {
		if _, err := fmt.Fprintf(f, "%s %s\n", task.StateTodo, summary); err != nil {
			return fmt.Errorf("write %s: %w", category, err)
		}
	}
	return nil
}

func validCategory(category string) error {
	if category == "" || category == "." || category == ".." || strings.ContainsAny(category, `/\`) {
		return fmt.Errorf("invalid category name %q", category)
	}
	return nil
}
