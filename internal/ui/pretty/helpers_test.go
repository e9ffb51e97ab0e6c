package pretty_test

import (
	"github.com/yaklabco/gomolar/pkg/batch"
	"github.com/yaklabco/gomolar/pkg/compound"
)

func evaluate(source string, line int, input string) batch.Item {
	runner := batch.New(batch.Options{})
	return runner.Evaluate(source, line, input)
}

func named(item batch.Item, name string) batch.Item {
	item.Compound = &compound.Info{Formula: item.Parse.Clean, CommonName: name}
	return item
}
