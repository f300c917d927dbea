package fonts

import (
	"errors"
	"fmt"
	"sync"
)

// Resolver picks the first loadable source. It resolves at most once and is
// safe for concurrent use.
type Resolver struct {
	sources []Source

	once sync.Once
	face *Face
	err  error
}

// NewResolver creates a Resolver over sources, tried in order.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Resolve returns the label face. When every source fails it returns the core
// face together with a *ResolutionError; the face is never nil.
func (r *Resolver) Resolve() (*Face, error) {
	r.once.Do(func() {
		r.face, r.err = r.resolve()
	})
	return r.face, r.err
}

func (r *Resolver) resolve() (*Face, error) {
	tried := make([]string, 0, len(r.sources))
	var errs []error

	for _, src := range r.sources {
		tried = append(tried, src.Name())

		data, err := src.Load()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		face, err := ParseFace(src.Name(), data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return face, nil
	}

	return CoreFace(), &ResolutionError{
		Tried:    tried,
		Fallback: CoreFamily,
		Err:      errors.Join(errs...),
	}
}
