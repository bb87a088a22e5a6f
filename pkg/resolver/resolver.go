// Package resolver implements the ordered waterfall that turns a free-text
// query into an answer. Each stage either answers or declines; the first
// answer wins and the web-search stage guarantees termination.
package resolver

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/repository"
)

// Stage is one resolver of the priority chain. An empty answer means the
// stage declines and the chain continues; an error means the backing store
// failed and the whole resolution aborts. "No match" is never an error.
type Stage interface {
	Name() string
	Resolve(ctx context.Context, query string) (string, error)
}

// Result is the answer of the first stage that did not decline.
type Result struct {
	Answer string
	Stage  string
}

// Pipeline walks the stages in a fixed priority order: arithmetic and the
// identity check run before any knowledge lookup, all knowledge lookups run
// before the static buckets, and the web-search fallback closes the chain.
// The order is a behavioral contract; do not reorder.
type Pipeline struct {
	stages []Stage
}

// New builds the pipeline over the given repository.
func New(repo repository.Repository) *Pipeline {
	return &Pipeline{
		stages: []Stage{
			&arithmeticStage{},
			&identityStage{repo: repo},
			newGameStage(repo),
			newCelebrityStage(repo),
			newTopicStage(repo),
			&bucketStage{},
			&webSearchStage{},
		},
	}
}

// Run resolves the query through the chain.
func (p *Pipeline) Run(ctx context.Context, query string) (*Result, error) {
	for _, stage := range p.stages {
		answer, err := stage.Resolve(ctx, query)
		if err != nil {
			return nil, goerr.Wrap(err, "resolution stage failed", goerr.V("stage", stage.Name()))
		}
		if answer != "" {
			return &Result{Answer: answer, Stage: stage.Name()}, nil
		}
	}
	// Unreachable: the web-search stage always answers.
	return nil, goerr.New("no stage produced an answer", goerr.V("query", query))
}
