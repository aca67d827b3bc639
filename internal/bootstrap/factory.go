package bootstrap

import (
	"github.com/westfall/windtrader/internal/errors"
	"github.com/westfall/windtrader/internal/sysml"
	"github.com/westfall/windtrader/internal/validate"
)

// ParserFactory builds parsers over the grammar of a Bootstrapper.
type ParserFactory struct {
	Bootstrap *Bootstrapper
	// MaxDepth overrides sysml.DefaultMaxDepth when positive.
	MaxDepth int
}

// NewParser implements validate.ParserFactory.
func (f *ParserFactory) NewParser() (validate.Parser, error) {
	g := f.Bootstrap.Grammar()
	if g == nil {
		return nil, errors.New("parser requested before the metamodel registry was initialized")
	}

	p, err := sysml.NewParser(g)
	if err != nil {
		return nil, errors.Wrap(err, "cannot construct parser")
	}
	if f.MaxDepth > 0 {
		p.MaxDepth = f.MaxDepth
	}
	return p, nil
}
