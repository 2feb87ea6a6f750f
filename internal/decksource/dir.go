package decksource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/abhisek/flashquiz/internal/deck"
)

// ErrNotFound is returned when a source has no set with the requested ID.
var ErrNotFound = errors.New("set not found in deck directory")

// Extensions recognised as set files. JSON is read with the YAML parser.
var extensions = []string{".yaml", ".yml", ".json"}

// setFile is the on-disk shape of a set:
//
//	name: Capitals
//	subject: Geography
//	cards:
//	  - question: Capital of France?
//	    answer: Paris
type setFile struct {
	Name    string     `koanf:"name" validate:"required"`
	Subject string     `koanf:"subject"`
	Cards   []cardFile `koanf:"cards" validate:"required,min=1,dive"`
}

type cardFile struct {
	ID       string `koanf:"id"`
	Question string `koanf:"question" validate:"required"`
	Answer   string `koanf:"answer" validate:"required"`
}

// Dir serves sets from YAML or JSON files under a directory. A set's ID is
// its file name without the extension.
type Dir struct {
	root     string
	validate *validator.Validate
}

// NewDir creates a Dir rooted at root.
func NewDir(root string) *Dir {
	return &Dir{root: root, validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Root returns the directory being served.
func (d *Dir) Root() string { return d.root }

// FetchSet loads the set file whose name matches setID.
func (d *Dir) FetchSet(ctx context.Context, setID string) (*deck.Set, error) {
	index, err := d.index(ctx)
	if err != nil {
		return nil, err
	}
	path, ok := index[setID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", setID, ErrNotFound)
	}
	return d.load(setID, path)
}

// ListSets returns a summary of every readable set file. Files that fail to
// parse are skipped.
func (d *Dir) ListSets(ctx context.Context) ([]deck.SetSummary, error) {
	index, err := d.index(ctx)
	if err != nil {
		return nil, err
	}

	var out []deck.SetSummary
	var errs []error
	for id, path := range index {
		set, err := d.load(id, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, deck.SetSummary{
			ID:        set.ID,
			Name:      set.Name,
			Subject:   set.Subject,
			CardCount: len(set.Cards),
			Source:    "local",
		})
	}
	return deck.MergeSummaries(out), errors.Join(errs...)
}

func (d *Dir) load(id, path string) (*deck.Set, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var sf setFile
	if err := k.Unmarshal("", &sf); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := d.validate.Struct(sf); err != nil {
		return nil, fmt.Errorf("invalid set file %s: %w", path, err)
	}

	set := &deck.Set{ID: id, Name: sf.Name, Subject: sf.Subject}
	for i, c := range sf.Cards {
		cardID := c.ID
		if cardID == "" {
			cardID = fmt.Sprintf("%s-%d", id, i+1)
		}
		set.Cards = append(set.Cards, deck.Card{ID: cardID, Question: c.Question, Answer: c.Answer})
	}
	return set, nil
}

// index maps set IDs to file paths. The first file found wins when two
// share a name.
func (d *Dir) index(ctx context.Context) (map[string]string, error) {
	index := make(map[string]string)
	if d.root == "" {
		return index, nil
	}

	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() {
			if path != d.root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !isSetFile(ext) {
			return nil
		}
		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if _, dup := index[id]; !dup {
			index[id] = path
		}
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return index, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan deck directory %s: %w", d.root, err)
	}
	return index, nil
}

func isSetFile(ext string) bool {
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
