package showcase

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"path"
	"strings"
	"sync"
)

var (
	ErrTooFewImages = errors.New("too few images")
	ErrUnknownBreed = errors.New("unknown breed")
)

// DefaultBreeds maps an image's filename prefix to the breed it shows.
var DefaultBreeds = map[string]string{
	"abyssinian": "Abyssinian",
	"bengal":     "Bengal",
	"maine_coon": "Maine Coon",
	"persian":    "Persian",
	"ragdoll":    "Ragdoll",
	"siamese":    "Siamese",
	"sphynx":     "Sphynx",
}

// A Cat is an image and the display name of the breed it shows.
type Cat struct {
	Breed string
	Src   string
}

// A Picker chooses images out of a directory.
//
// A Picker is safe for concurrent use.
type Picker struct {
	breeds map[string]string
	dir    string
	fsys   fs.FS
	prefix string

	mu   sync.Mutex
	rand *rand.Rand
}

// NewPicker constructs a *Picker choosing among the files in dir within fsys.
// The Src of a picked Cat is the file's name joined to urlPrefix.
func NewPicker(fsys fs.FS, dir, urlPrefix string, opts ...PickerOptFn) *Picker {
	p := &Picker{
		breeds: DefaultBreeds,
		dir:    dir,
		fsys:   fsys,
		prefix: urlPrefix,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Pick lists the files in the directory and chooses two distinct ones uniformly at random.
//
// Pick fails with the filesystem's error when the directory cannot be read,
// with ErrTooFewImages when it holds fewer than two files,
// and with ErrUnknownBreed when any filename's prefix before its first "."
// is not a known breed.
func (p *Picker) Pick() ([2]Cat, error) {
	entries, err := fs.ReadDir(p.fsys, p.dir)
	if err != nil {
		return [2]Cat{}, fmt.Errorf("can't read %s: %w", p.dir, err)
	}

	cats := make([]Cat, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		key, _, _ := strings.Cut(e.Name(), ".")
		breed, ok := p.breeds[key]
		if !ok {
			return [2]Cat{}, fmt.Errorf("%w: %q from %s", ErrUnknownBreed, key, e.Name())
		}

		cats = append(cats, Cat{Breed: breed, Src: path.Join(p.prefix, e.Name())})
	}

	if len(cats) < 2 {
		return [2]Cat{}, fmt.Errorf("%w: %d in %s", ErrTooFewImages, len(cats), p.dir)
	}

	i, j := p.distinct(len(cats))
	return [2]Cat{cats[i], cats[j]}, nil
}

// distinct draws two different indices below n, every pair equally likely.
func (p *Picker) distinct(n int) (int, int) {
	intN := rand.IntN
	if p.rand != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		intN = p.rand.IntN
	}

	i := intN(n)
	j := intN(n - 1)
	if j >= i {
		j++
	}

	return i, j
}

// A PickerOptFn configures a Picker when constructing a new one.
type PickerOptFn func(*Picker)

// WithBreeds replaces DefaultBreeds.
func WithBreeds(breeds map[string]string) PickerOptFn {
	return func(p *Picker) {
		p.breeds = breeds
	}
}

// WithRand draws picks from r instead of the shared source.
func WithRand(r *rand.Rand) PickerOptFn {
	return func(p *Picker) {
		p.rand = r
	}
}
