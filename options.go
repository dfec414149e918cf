package bluenoise

import "fmt"

// Options holds the tunable parameters shared by the sphere and disk
// samplers.
type Options struct {
	// Candidates is the number of random candidates evaluated for every
	// accepted sample. More candidates improve dispersion at higher cost.
	Candidates int
}

// Option configures a sampler at construction time.
type Option func(*Options) error

// WithCandidates sets the number of candidates tried per sample.
// Typical values are small, in the range 10-60.
func WithCandidates(candidates int) Option {
	return func(o *Options) error {
		if candidates <= 0 {
			return fmt.Errorf("%w: candidates must be positive, got %d",
				ErrInvalidArgument, candidates)
		}
		o.Candidates = candidates
		return nil
	}
}

func applyOptions(setters []Option) (Options, error) {
	opts := Options{Candidates: defaultCandidates}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return Options{}, err
		}
	}
	return opts, nil
}
