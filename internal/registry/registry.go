package registry

import (
	"fmt"
	"path/filepath"
	"sync"

	"formatbench/internal/engines"
	"formatbench/internal/model"
	"formatbench/internal/utils"
)

// UnitOfWork performs exactly one read or one write against a fixed path.
type UnitOfWork func() error

// Registry maps each enabled (engine, format, operation) combination to the
// unit of work that executes it against a fixed per-engine file path. It is
// built once at startup and read-only afterwards.
type Registry struct {
	ops   map[model.Combination]UnitOfWork
	paths map[pathKey]string
	mutex sync.RWMutex
}

type pathKey struct {
	engine model.EngineType
	format model.FormatType
}

// New builds the registry for one dataset. Every engine gets its own file
// per format so one engine never reads a file produced by another.
func New(ds *model.Dataset, engineList []engines.Engine, tempDir string) *Registry {
	r := &Registry{
		ops:   make(map[model.Combination]UnitOfWork),
		paths: make(map[pathKey]string),
	}
	r.registerOperations(ds, engineList, tempDir)
	return r
}

// registerOperations registers read and write units for every enabled pair
func (r *Registry) registerOperations(ds *model.Dataset, engineList []engines.Engine, tempDir string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, eng := range engineList {
		eng := eng
		for _, format := range EnabledFormats(eng.Name()) {
			format := format
			path := filepath.Join(tempDir, fmt.Sprintf("%s_%s.%s", ds.Name, eng.Name(), format.Extension()))
			r.paths[pathKey{engine: eng.Name(), format: format}] = path

			r.ops[model.Combination{Engine: eng.Name(), Format: format, Operation: model.OperationWrite}] = func() error {
				return eng.Write(ds, format, path)
			}
			r.ops[model.Combination{Engine: eng.Name(), Format: format, Operation: model.OperationRead}] = func() error {
				_, err := eng.Read(format, path)
				return err
			}
		}
	}
}

// Get returns the unit of work for a combination.
func (r *Registry) Get(c model.Combination) (UnitOfWork, error) {
	r.mutex.RLock()
	work, exists := r.ops[c]
	r.mutex.RUnlock()

	if !exists {
		return nil, utils.NewUnsupportedError(fmt.Sprintf("%s/%s/%s is not registered", c.Engine, c.Format, c.Operation))
	}
	return work, nil
}

// Path returns the file path a combination operates on.
func (r *Registry) Path(engine model.EngineType, format model.FormatType) string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.paths[pathKey{engine: engine, format: format}]
}

// Combinations returns all registered combinations in deterministic trial
// order: engine declaration order, then format order, write before read.
func (r *Registry) Combinations() []model.Combination {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var combos []model.Combination
	for _, engine := range model.EngineOrder {
		for _, format := range model.FormatOrder {
			for _, op := range model.OperationOrder {
				c := model.Combination{Engine: engine, Format: format, Operation: op}
				if _, exists := r.ops[c]; exists {
					combos = append(combos, c)
				}
			}
		}
	}
	return combos
}
