package api

import (
	"github.com/JaimeStill/scribe/internal/posts"
	"github.com/JaimeStill/scribe/internal/reviews"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Posts posts.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	store := reviews.NewMemoryStore(runtime.ReviewTTL)
	postsSystem := posts.New(runtime.Workflow, store, runtime.Logger)

	return &Domain{
		Posts: postsSystem,
	}
}
