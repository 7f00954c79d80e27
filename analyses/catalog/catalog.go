// Package catalog assembles the default analysis registry.
package catalog

import (
	"github.com/scottierieh/statistica-frontend-sub010/analyses"
	"github.com/scottierieh/statistica-frontend-sub010/analyses/cva"
	"github.com/scottierieh/statistica-frontend-sub010/analyses/friedman"
	"github.com/scottierieh/statistica-frontend-sub010/analyses/influence"
	"github.com/scottierieh/statistica-frontend-sub010/analyses/naivebayes"
	"github.com/scottierieh/statistica-frontend-sub010/analyses/stress"
	"github.com/scottierieh/statistica-frontend-sub010/analyses/svm"
	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
)

// Default returns the full catalog of analyses bound to the given client.
func Default(client *statsapi.Client) (*analyses.Registry, error) {
	registry := analyses.NewRegistry()
	err := registry.Register(
		naivebayes.New(client),
		svm.New(client),
		friedman.New(client),
		influence.New(client),
		cva.New(client),
		stress.New(client),
	)
	if err != nil {
		return nil, err
	}
	return registry, nil
}
