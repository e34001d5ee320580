package fs

import (
	"slices"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path        string   `json:"path"`
	DefaultExt  string   `json:"default_ext"`
	MustExist   bool     `json:"must_exist"`
	Serializers []string `json:"serializers"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	serializers := make([]string, 0, len(r.serializers))
	for ext := range r.serializers {
		serializers = append(serializers, ext)
	}
	slices.Sort(serializers)

	return RepositoryState{
		Path:        r.Path,
		DefaultExt:  r.config.DefaultExt,
		MustExist:   r.config.MustExist,
		Serializers: serializers,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
