package reporters

import (
	"os"

	"go.uber.org/dig"
)

// RegisterProviders registers the console reporter with the DIG container.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(func() *TextReporter {
		return NewTextReporter(os.Stdout)
	})
}
