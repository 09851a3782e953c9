package backdrop

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned by NewScene for names not in the registry.
var ErrUnknownScene = errors.New("backdrop: unknown scene")

// Options are the construction parameters shared by every registered scene.
type Options struct {
	// Seed fixes the generator's random draws. Zero picks a fresh seed.
	Seed uint64
}

var registry = map[string]func(Source) Scene{
	"spear": func(src Source) Scene {
		cfg := DefaultSpearConfig()
		cfg.Rand = src
		return NewSpearScene(cfg)
	},
	"neural": func(src Source) Scene {
		cfg := DefaultNeuralConfig()
		cfg.Rand = src
		return NewNeuralScene(cfg)
	},
	"circuit": func(src Source) Scene {
		cfg := DefaultCircuitConfig()
		cfg.Rand = src
		return NewCircuitScene(cfg)
	},
	"matrix": func(src Source) Scene {
		cfg := DefaultMatrixConfig()
		cfg.Rand = src
		return NewMatrixScene(cfg)
	},
}

// Scenes returns the registered scene names in sorted order.
func Scenes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewScene constructs the named scene with its default configuration.
func NewScene(name string, opts Options) (Scene, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownScene, name, Scenes())
	}
	return ctor(NewSource(opts.Seed)), nil
}
